package texgloss

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// matchTimeout 限制单次匹配耗时，防止病态输入。
const matchTimeout = 5 * time.Second

// ErrEmptyTerm 表示术语为空或仅含空白。
var ErrEmptyTerm = errors.New("texgloss: empty term")

// Pattern 是单个术语的匹配器。
//
// 匹配不区分大小写；前面不能是反斜杠或单词字符，后面不能是单词字符。
// \w 按 Unicode 处理，带重音的字母也算单词字符。
// 多词术语中的空白可匹配文档中任意长度的空白。
type Pattern struct {
	Term string
	re   *regexp2.Regexp
}

// NewPattern 为 term 编译匹配器。
func NewPattern(term string) (*Pattern, error) {
	words := strings.Fields(term)
	if len(words) == 0 {
		return nil, ErrEmptyTerm
	}
	for i, w := range words {
		words[i] = regexp2.Escape(w)
	}

	expr := `(?<![\\\w])` + strings.Join(words, `\s+`) + `(?!\w)`
	re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("texgloss: compile pattern for %q: %w", term, err)
	}
	re.MatchTimeout = matchTimeout

	return &Pattern{Term: term, re: re}, nil
}

// FindAll 返回 src 中该术语的全部出现位置，按位置升序。
func (p *Pattern) FindAll(src []rune) ([]Range, error) {
	var out []Range
	m, err := p.re.FindRunesMatch(src)
	for m != nil && err == nil {
		out = append(out, Range{Start: m.Index, End: m.Index + m.Length})
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("texgloss: match %q: %w", p.Term, err)
	}

	return out, nil
}

// BuildPatterns 去重并按长度降序构建匹配器，长术语优先，避免短术语抢先命中。
//
// 去重不区分大小写，保留首次出现的写法；等长术语按字典序排列。
func BuildPatterns(terms []string) ([]*Pattern, error) {
	seen := make(map[string]bool, len(terms))
	unique := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.Join(strings.Fields(t), " ")
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
	}

	slices.SortStableFunc(unique, func(a, b string) int {
		if c := cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	patterns := make([]*Pattern, 0, len(unique))
	for _, t := range unique {
		p, err := NewPattern(t)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return patterns, nil
}
