// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - --config 指定，或按 DefaultPaths() 顺序查找
//  3. 环境变量 - 前缀 GLOSSMARK_
//  4. CLI flags - 仅用户显式设置的 flag
package config

import (
	"github.com/lwmacct/261019-go-pkg-glossmark/pkg/texgloss"
)

// AppName 应用名称，用于默认配置路径。
const AppName = "glossmark"

// EnvPrefix 环境变量前缀。
const EnvPrefix = "GLOSSMARK_"

// Config 应用配置。
type Config struct {
	Source   SourceConfig   `json:"source" desc:"源码树配置"`
	Glossary GlossaryConfig `json:"glossary" desc:"术语表配置"`
	Tag      TagConfig      `json:"tag" desc:"标记插入配置"`
	Log      LogConfig      `json:"log" desc:"日志配置"`
}

// SourceConfig 源码树配置。
type SourceConfig struct {
	Root         string   `json:"root" desc:"源码根目录"`
	Ext          string   `json:"ext" desc:"待处理文件扩展名"`
	ExcludeDirs  []string `json:"exclude-dirs" desc:"排除的目录名"`
	IgnoreFiles  []string `json:"ignore-files" desc:"忽略的文件名"`
	IgnoreGlobs  []string `json:"ignore-globs" desc:"忽略的相对路径 glob"`
	SkipRootDocs bool     `json:"skip-root-docs" desc:"跳过与父目录同名的主文件"`
}

// GlossaryConfig 术语表配置。
type GlossaryConfig struct {
	Candidates []texgloss.Candidate `json:"candidates" desc:"术语表候选位置，按顺序查找"`
	Letters    string               `json:"letters" desc:"字母分卷目录，相对于术语表所在目录"`
	Command    string               `json:"command" desc:"术语定义宏名称"`
}

// TagConfig 标记插入配置。
type TagConfig struct {
	Marker        string   `json:"marker" desc:"插入的标记文本"`
	TitleCommands []string `json:"title-commands" desc:"参数视为标题的命令"`
	RefCommands   []string `json:"ref-commands" desc:"参数视为引用的命令"`
	DryRun        bool     `json:"dry-run" desc:"只计算不写回"`
	Diff          bool     `json:"diff" desc:"输出修改的行差异"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别 (debug/info/warn/error)"`
	Format string `json:"format" desc:"日志格式 (text/json)"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Root:         "src",
			Ext:          ".tex",
			ExcludeDirs:  []string{"Candidatura", "Diario Di Bordo", "Glossario"},
			IgnoreFiles:  []string{"heading.tex", "table.tex", "title.tex", "modifiche.tex"},
			IgnoreGlobs:  []string{},
			SkipRootDocs: true,
		},
		Glossary: GlossaryConfig{
			Candidates: []texgloss.Candidate{
				{Path: "PB/Documenti Interni/Glossario/Glossario.tex", Exclude: []string{"RTB"}},
				{Path: "RTB/Documenti Interni/Glossario/Glossario.tex", Exclude: []string{}},
			},
			Letters: "content/letters",
			Command: texgloss.DefaultTermCommand,
		},
		Tag: TagConfig{
			Marker:        texgloss.DefaultMarker,
			TitleCommands: append([]string(nil), texgloss.DefaultTitleCommands...),
			RefCommands:   append([]string(nil), texgloss.DefaultRefCommands...),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
