package show_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command/commandtest"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command/show"
)

func TestCommand(t *testing.T) {
	_, configPath := commandtest.Project(t)

	var out bytes.Buffer
	app := &cli.Command{Name: "glossmark", Writer: &out, Commands: []*cli.Command{show.Command}}
	err := app.Run(context.Background(), []string{
		"glossmark", "config", "-c", configPath, "--source-root", "docs", "--tag-dry-run",
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "root: docs # 源码根目录")
	assert.Contains(t, got, "dry-run: true")
	assert.Contains(t, got, "level: error")
}
