// Package commandtest 提供命令测试共用的项目夹具。
package commandtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Project 在临时目录中创建一个最小的源码树，返回源码根目录与一个静默日志的配置文件路径。
//
// 源码树包含 RTB 术语表（定义 API 与 Sistema operativo）和文档 doc/a.tex。
func Project(t *testing.T) (root, configPath string) {
	t.Helper()
	root = t.TempDir()
	files := map[string]string{
		"RTB/Documenti Interni/Glossario/Glossario.tex": `\term{API} \term{Sistema operativo}`,
		"doc/a.tex": "La API e il Sistema operativo qui\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	configPath = filepath.Join(t.TempDir(), "glossmark.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: error\n"), 0o600))

	return root, configPath
}
