package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command/show"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command/tag"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command/terms"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/config"
)

func main() {
	app := &cli.Command{
		Name:    config.AppName,
		Usage:   "LaTeX 词汇表标记工具",
		Version: command.Version,
		Commands: []*cli.Command{
			tag.Command,
			terms.Command,
			show.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
