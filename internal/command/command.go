// Package command 提供各子命令共用的默认值、flags 与初始化逻辑。
package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/config"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/logging"
)

// Version 应用版本。
const Version = "0.1.0"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// CommonFlags 返回所有子命令共用的 flags（源码树、术语表、日志）。
//
// flag 名称由配置 key 将 "." 替换为 "-" 得到，见 [config.FlagName]。
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径（默认按 .glossmark.yaml 等路径查找）",
		},
		&cli.StringFlag{
			Name:    "source-root",
			Aliases: []string{"s"},
			Value:   Defaults.Source.Root,
			Usage:   "源码根目录",
		},
		&cli.StringFlag{
			Name:  "source-ext",
			Value: Defaults.Source.Ext,
			Usage: "待处理文件扩展名",
		},
		&cli.StringSliceFlag{
			Name:  "source-exclude-dirs",
			Value: Defaults.Source.ExcludeDirs,
			Usage: "排除的目录名",
		},
		&cli.StringSliceFlag{
			Name:  "source-ignore-files",
			Value: Defaults.Source.IgnoreFiles,
			Usage: "忽略的文件名",
		},
		&cli.StringSliceFlag{
			Name:  "source-ignore-globs",
			Usage: "忽略的相对路径 glob（以 / 分隔）",
		},
		&cli.BoolFlag{
			Name:  "source-skip-root-docs",
			Value: Defaults.Source.SkipRootDocs,
			Usage: "跳过与父目录同名的主文件",
		},
		&cli.StringFlag{
			Name:  "glossary-letters",
			Value: Defaults.Glossary.Letters,
			Usage: "字母分卷目录，相对于术语表所在目录",
		},
		&cli.StringFlag{
			Name:  "glossary-command",
			Value: Defaults.Glossary.Command,
			Usage: "术语定义宏名称",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别 (debug/info/warn/error)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: Defaults.Log.Format,
			Usage: "日志格式 (text/json)",
		},
	}
}

// TagFlags 返回标记插入相关的 flags。
func TagFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "tag-marker",
			Value: Defaults.Tag.Marker,
			Usage: "插入的标记文本",
		},
		&cli.StringSliceFlag{
			Name:  "tag-title-commands",
			Value: Defaults.Tag.TitleCommands,
			Usage: "参数视为标题的命令",
		},
		&cli.StringSliceFlag{
			Name:  "tag-ref-commands",
			Value: Defaults.Tag.RefCommands,
			Usage: "参数视为引用的命令",
		},
		&cli.BoolFlag{
			Name:    "tag-dry-run",
			Aliases: []string{"n"},
			Usage:   "只计算不写回",
		},
		&cli.BoolFlag{
			Name:    "tag-diff",
			Aliases: []string{"d"},
			Usage:   "输出修改的行差异",
		},
	}
}

// Setup 加载配置并初始化日志，日志写入 stderr 并设为 slog 默认记录器。
func Setup(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := config.Load(
		config.WithCommand(cmd),
		config.WithConfigFile(cmd.String("config")),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	return cfg, logger, nil
}
