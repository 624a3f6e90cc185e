package tag

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/batch"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command"
)

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	// 差异写入 stdout，日志写入 stderr
	_, err = batch.New(cfg, logger, os.Stdout).Run(ctx)

	return err
}
