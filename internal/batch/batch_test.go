package batch_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/batch"
	"github.com/lwmacct/261019-go-pkg-glossmark/internal/config"
)

const (
	introPath   = "PB/Documenti Esterni/Piano/content/intro.tex"
	introText   = "\\section{API}\nLa API e il Sistema operativo sono pronti.\n"
	introTagged = "\\section{API}\nLa API$^G$ e il Sistema operativo$^G$ sono pronti.\n"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	}
}

func readFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)

	return string(data)
}

func newProject(t *testing.T) (string, *config.Config) {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"PB/Documenti Interni/Glossario/Glossario.tex":         `\term{API}`,
		"PB/Documenti Interni/Glossario/content/letters/s.tex": `\term{Sistema operativo} \term{Sistema}`,
		"PB/Documenti Esterni/Piano/content/intro.tex":         introText,
		"PB/Documenti Esterni/Piano/Piano.tex":                 "La API qui\n",
		"RTB/Documenti Interni/Glossario/Glossario.tex":        `\term{Vecchio}`,
		"RTB/Documenti Esterni/Piano/content/intro.tex":        "La API qui\n",
	})

	cfg := config.DefaultConfig()
	cfg.Source.Root = root

	return root, &cfg
}

func newRunner(cfg *config.Config, out io.Writer) *batch.Runner {
	return batch.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), out)
}

func TestRunner_Run(t *testing.T) {
	root, cfg := newProject(t)

	report, err := newRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "PB/Documenti Interni/Glossario/Glossario.tex"), report.Glossary)
	assert.Equal(t, 3, report.Terms)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, 2, report.Insertions)

	assert.Equal(t, introTagged, readFile(t, root, introPath))
	assert.Equal(t, "La API qui\n", readFile(t, root, "PB/Documenti Esterni/Piano/Piano.tex"))
	assert.Equal(t, "La API qui\n", readFile(t, root, "RTB/Documenti Esterni/Piano/content/intro.tex"))

	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(introPath)))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestRunner_Idempotent(t *testing.T) {
	root, cfg := newProject(t)

	_, err := newRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	report, err := newRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Changed)
	assert.Equal(t, introTagged, readFile(t, root, introPath))
}

func TestRunner_DryRunDiff(t *testing.T) {
	root, cfg := newProject(t)
	cfg.Tag.DryRun = true
	cfg.Tag.Diff = true

	var out bytes.Buffer
	report, err := newRunner(cfg, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, introText, readFile(t, root, introPath))
	assert.Contains(t, out.String(), "-La API e il Sistema operativo sono pronti.\n")
	assert.Contains(t, out.String(), "+La API$^G$ e il Sistema operativo$^G$ sono pronti.\n")
	assert.NotContains(t, out.String(), "section")
}

func TestRunner_FallbackGlossary(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"RTB/Documenti Interni/Glossario/Glossario.tex": `\term{Verbale}`,
		"RTB/Verbali/v1.tex":                            "Il Verbale interno\n",
	})
	cfg := config.DefaultConfig()
	cfg.Source.Root = root

	report, err := newRunner(&cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Insertions)
	assert.Equal(t, "Il Verbale$^G$ interno\n", readFile(t, root, "RTB/Verbali/v1.tex"))
}

func TestRunner_MissingGlossary(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"doc/a.tex": "La API qui\n"})
	cfg := config.DefaultConfig()
	cfg.Source.Root = root

	report, err := newRunner(&cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Glossary)
	assert.Equal(t, 0, report.Terms)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 0, report.Changed)
}

func TestRunner_InvalidUTF8(t *testing.T) {
	root, cfg := newProject(t)
	bad := "PB/Documenti Esterni/Piano/content/bad.tex"
	writeFiles(t, root, map[string]string{bad: "\xff La API qui\n"})

	_, err := newRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "\xff La API qui\n", readFile(t, root, bad))
}

func TestRunner_MissingRoot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source.Root = filepath.Join(t.TempDir(), "nope")

	_, err := newRunner(&cfg, nil).Run(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunner_Canceled(t *testing.T) {
	_, cfg := newProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(cfg, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_LoadGlossary(t *testing.T) {
	_, cfg := newProject(t)

	gloss, err := newRunner(cfg, nil).LoadGlossary()
	require.NoError(t, err)
	assert.Equal(t, []string{"API", "Sistema operativo", "Sistema"}, gloss.Terms)
	assert.Equal(t, []string{"RTB"}, gloss.Exclude)
}
