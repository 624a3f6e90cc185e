package config

import "github.com/urfave/cli/v3"

// options 配置加载选项。
type options struct {
	cmd          *cli.Command
	configPaths  []string
	configFile   string // 显式指定的配置文件，不存在时报错
	envPrefix    string
	noExpansion  bool
	envPrefixSet bool
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithConfigPaths 设置配置文件搜索路径，按顺序查找，命中首个文件即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithConfigFile 指定唯一的配置文件；文件不存在时 [Load] 返回错误。
// path 为空时不生效。
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithEnvPrefix 覆盖环境变量前缀（默认 [EnvPrefix]），空字符串表示禁用。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
		o.envPrefixSet = true
	}
}

// WithoutTemplateExpansion 禁用配置文件中 ${...} 的展开。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noExpansion = true
	}
}
