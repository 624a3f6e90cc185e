// Package show 提供打印当前生效配置的命令。
package show

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/config"
)

// Command 配置打印命令
var Command = &cli.Command{
	Name:   "config",
	Usage:  "以带注释的 YAML 打印当前生效的配置",
	Action: action,
	Flags:  slices.Concat(command.CommonFlags(), command.TagFlags()),
}

func action(_ context.Context, cmd *cli.Command) error {
	cfg, _, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	data, err := config.MarshalYAML(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.Root().Writer.Write(data)

	return err
}
