package texgloss

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Filter 决定源码树中哪些文件需要处理。
type Filter struct {
	// Ext 为待处理文件的扩展名（含点号），比较时不区分大小写。
	Ext string
	// ExcludeDirs 中的目录名出现在相对路径任一层级时跳过整个目录。
	ExcludeDirs []string
	// IgnoreFiles 中的文件名直接跳过。
	IgnoreFiles []string
	// IgnoreGlobs 匹配相对路径（以 / 分隔）的文件跳过。
	IgnoreGlobs []string
	// SkipRootDocs 为 true 时跳过文件名（不含扩展名）等于父目录名
	// （空格替换为下划线）的文件，即文档的主文件。
	SkipRootDocs bool
}

// compiledFilter 是 [Filter] 的预处理形式。
type compiledFilter struct {
	ext          string
	excludeDirs  map[string]bool
	ignoreFiles  map[string]bool
	globs        []glob.Glob
	skipRootDocs bool
}

func (f Filter) compile() (*compiledFilter, error) {
	cf := &compiledFilter{
		ext:          f.Ext,
		excludeDirs:  toSet(f.ExcludeDirs),
		ignoreFiles:  toSet(f.IgnoreFiles),
		skipRootDocs: f.SkipRootDocs,
	}
	for _, pattern := range f.IgnoreGlobs {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore glob %q: %w", pattern, err)
		}
		cf.globs = append(cf.globs, g)
	}

	return cf, nil
}

func (cf *compiledFilter) skipFile(path, rel string) bool {
	name := filepath.Base(path)
	if cf.ignoreFiles[name] {
		return true
	}

	if cf.skipRootDocs {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		parent := strings.ReplaceAll(filepath.Base(filepath.Dir(path)), " ", "_")
		if stem == parent {
			return true
		}
	}

	slashed := filepath.ToSlash(rel)
	for _, g := range cf.globs {
		if g.Match(slashed) {
			return true
		}
	}

	return false
}

// Walk 按字典序遍历 root 下所有待处理文件，对每个未被跳过的文件调用 fn。
//
// onSkip 非 nil 时，对每个因过滤规则被跳过的文件或目录调用。
func Walk(root string, f Filter, fn func(path string) error, onSkip func(path string)) error {
	cf, err := f.compile()
	if err != nil {
		return err
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && cf.excludeDirs[d.Name()] {
				if onSkip != nil {
					onSkip(path)
				}
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), cf.ext) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if cf.skipFile(path, rel) {
			if onSkip != nil {
				onSkip(path)
			}
			return nil
		}

		return fn(path)
	})
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}

	return set
}
