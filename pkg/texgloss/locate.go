package texgloss

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrGlossaryNotFound 表示所有候选位置都不存在术语表文件。
var ErrGlossaryNotFound = errors.New("texgloss: glossary not found")

// Candidate 是术语表文件的一个候选位置。
type Candidate struct {
	// Path 相对于源码根目录（绝对路径保持不变）
	Path string `json:"path" desc:"术语表文件路径，相对于 source.root"`
	// Exclude 为选中该候选时额外排除的目录名
	Exclude []string `json:"exclude" desc:"选中该术语表时额外排除的目录名"`
}

// Locate 按顺序查找第一个存在的候选术语表，返回该候选及其完整路径。
func Locate(root string, candidates []Candidate) (Candidate, string, error) {
	for _, c := range candidates {
		path := c.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return c, path, nil
		case err != nil && !os.IsNotExist(err):
			return Candidate{}, "", fmt.Errorf("stat glossary %s: %w", path, err)
		}
	}

	return Candidate{}, "", ErrGlossaryNotFound
}
