// Package batch 执行一次完整的术语标注流程：定位术语表、提取术语、遍历并改写源码。
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/config"
	"github.com/lwmacct/261019-go-pkg-glossmark/pkg/texgloss"
)

// Report 汇总一次运行的结果。
type Report struct {
	Glossary   string // 使用的术语表路径，未找到时为空
	Terms      int    // 去重后的术语数
	Scanned    int    // 处理的文件数
	Skipped    int    // 被过滤规则跳过的文件与目录数
	Changed    int    // 内容发生变化的文件数
	Insertions int    // 插入的标记数
}

// Glossary 是定位并解析后的术语表。
type Glossary struct {
	Path    string
	Exclude []string // 选中的候选附带的排除目录
	Terms   []string
}

// Runner 按配置执行标注流程。不可并发使用。
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	dmp    *diffmatchpatch.DiffMatchPatch
}

// New 创建 Runner。out 接收 --tag-diff 输出的差异文本。
func New(cfg *config.Config, logger *slog.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}

	return &Runner{cfg: cfg, logger: logger, out: out, dmp: diffmatchpatch.New()}
}

// LoadGlossary 定位术语表并提取其中（含字母分卷）的全部术语。
// 未找到术语表时返回 [texgloss.ErrGlossaryNotFound]。
func (r *Runner) LoadGlossary() (*Glossary, error) {
	cand, path, err := texgloss.Locate(r.cfg.Source.Root, r.cfg.Glossary.Candidates)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Glossary found", "path", path)

	terms, err := texgloss.LoadTerms(path, r.cfg.Glossary.Letters, r.cfg.Source.Ext, r.cfg.Glossary.Command)
	if err != nil {
		return nil, err
	}

	return &Glossary{Path: path, Exclude: cand.Exclude, Terms: terms}, nil
}

// Run 执行一次完整的标注。
//
// 术语表缺失只记录错误，仍以空术语集遍历源码树（不会修改任何文件）。
// 读写失败会中止遍历并返回错误，此前已写回的文件保持修改。
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	r.logger.Info("Processing started", "root", r.cfg.Source.Root)

	gloss, err := r.LoadGlossary()
	switch {
	case errors.Is(err, texgloss.ErrGlossaryNotFound):
		r.logger.Error("No glossary found", "root", r.cfg.Source.Root, "candidates", candidatePaths(r.cfg.Glossary.Candidates))
		gloss = &Glossary{}
	case err != nil:
		return nil, err
	}

	tagger, err := texgloss.NewTagger(gloss.Terms,
		texgloss.WithMarker(r.cfg.Tag.Marker),
		texgloss.WithExclusions(texgloss.NewExclusions(r.cfg.Tag.TitleCommands, r.cfg.Tag.RefCommands)),
	)
	if err != nil {
		return nil, fmt.Errorf("build patterns: %w", err)
	}
	r.logger.Info("Patterns built", "terms", len(tagger.Patterns()))

	report := &Report{Glossary: gloss.Path, Terms: len(tagger.Patterns())}
	filter := texgloss.Filter{
		Ext:          r.cfg.Source.Ext,
		ExcludeDirs:  append(append([]string(nil), r.cfg.Source.ExcludeDirs...), gloss.Exclude...),
		IgnoreFiles:  r.cfg.Source.IgnoreFiles,
		IgnoreGlobs:  r.cfg.Source.IgnoreGlobs,
		SkipRootDocs: r.cfg.Source.SkipRootDocs,
	}

	err = texgloss.Walk(r.cfg.Source.Root, filter,
		func(path string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Scanned++
			n, err := r.processFile(path, tagger)
			if n > 0 {
				report.Changed++
				report.Insertions += n
			}
			return err
		},
		func(path string) {
			report.Skipped++
			r.logger.Debug("Skipped", "path", path)
		},
	)
	if err != nil {
		return report, fmt.Errorf("process %s: %w", r.cfg.Source.Root, err)
	}

	r.logger.Info("Processing completed",
		"scanned", report.Scanned,
		"changed", report.Changed,
		"markers", report.Insertions,
		"dryRun", r.cfg.Tag.DryRun,
	)

	return report, nil
}

// processFile 标注单个文件，返回插入的标记数。
func (r *Runner) processFile(path string, tagger *texgloss.Tagger) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	content, err := os.ReadFile(path) //nolint:gosec // path comes from walking the source root
	if err != nil {
		return 0, err
	}
	if !utf8.Valid(content) {
		r.logger.Warn("Skipping file with invalid UTF-8", "file", path)
		return 0, nil
	}

	text := string(content)
	tagged, inserts, err := tagger.Apply(text)
	if err != nil {
		return 0, fmt.Errorf("tag %s: %w", path, err)
	}
	if tagged == text {
		return 0, nil
	}

	for _, ins := range inserts {
		r.logger.Debug("Added marker", "term", ins.Term, "match", ins.Match, "file", path, "line", ins.Line)
	}
	if r.cfg.Tag.Diff {
		if err := r.writeDiff(path, text, tagged); err != nil {
			return 0, fmt.Errorf("write diff: %w", err)
		}
	}

	if r.cfg.Tag.DryRun {
		r.logger.Info("Would modify", "file", path, "markers", len(inserts))
		return len(inserts), nil
	}
	if err := os.WriteFile(path, []byte(tagged), info.Mode().Perm()); err != nil {
		return 0, err
	}
	r.logger.Info("Modified", "file", path, "markers", len(inserts))

	return len(inserts), nil
}

// writeDiff 以行为单位输出修改前后的差异，只包含变化的行。
func (r *Runner) writeDiff(path, before, after string) error {
	a, b, lines := r.dmp.DiffLinesToChars(before, after)
	diffs := r.dmp.DiffCharsToLines(r.dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", path, path)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

func candidatePaths(cands []texgloss.Candidate) []string {
	paths := make([]string, len(cands))
	for i, c := range cands {
		paths[i] = c.Path
	}

	return paths
}
