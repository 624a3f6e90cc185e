package terms_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command/commandtest"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/command/terms"
)

func TestCommand(t *testing.T) {
	root, configPath := commandtest.Project(t)

	var out bytes.Buffer
	app := &cli.Command{Name: "glossmark", Writer: &out, Commands: []*cli.Command{terms.Command}}
	err := app.Run(context.Background(), []string{
		"glossmark", "terms", "-c", configPath, "-s", root,
	})
	require.NoError(t, err)
	assert.Equal(t, "API\nSistema operativo\n", out.String())
}
