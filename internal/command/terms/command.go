// Package terms 提供列出术语表中术语的命令。
package terms

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/batch"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command"
)

// Command 术语列表命令
var Command = &cli.Command{
	Name:   "terms",
	Usage:  "列出术语表（含字母分卷）中定义的术语",
	Action: action,
	Flags:  command.CommonFlags(),
}

func action(_ context.Context, cmd *cli.Command) error {
	cfg, logger, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	gloss, err := batch.New(cfg, logger, nil).LoadGlossary()
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	for _, term := range gloss.Terms {
		if _, err := fmt.Fprintln(w, term); err != nil {
			return err
		}
	}
	logger.Info("Terms extracted", "glossary", gloss.Path, "count", len(gloss.Terms))

	return nil
}
