// Package tag 提供为源码树插入词汇表标记的命令。
package tag

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command"
)

// Command 标注命令
var Command = &cli.Command{
	Name:   "tag",
	Usage:  "在术语首次出现处插入词汇表标记",
	Action: action,
	Flags:  slices.Concat(command.CommonFlags(), command.TagFlags()),
}
