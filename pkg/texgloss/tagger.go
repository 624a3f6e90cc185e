package texgloss

import (
	"slices"
	"unicode"
)

// DefaultMarker 是插入在术语后的词汇表标记。
const DefaultMarker = "$^G$"

// Insertion 描述一次标记插入。
type Insertion struct {
	Offset int    // 插入位置（原文中的 rune 偏移）
	Line   int    // 插入位置所在行，从 1 开始
	Term   string // 术语表中的写法
	Match  string // 文档中的实际写法
	Text   string // 插入的文本
}

// Tagger 在文档中为每个术语的首次有效出现插入标记。
// 零值不可用，使用 [NewTagger] 创建；创建后可并发只读使用。
type Tagger struct {
	patterns   []*Pattern
	marker     []rune
	exclusions *Exclusions
}

// TaggerOption 配置 [Tagger]。
type TaggerOption func(*Tagger)

// WithMarker 设置插入的标记文本，默认 [DefaultMarker]。
func WithMarker(marker string) TaggerOption {
	return func(t *Tagger) {
		if marker != "" {
			t.marker = []rune(marker)
		}
	}
}

// WithExclusions 设置排除区间规则，默认使用
// [DefaultTitleCommands] 与 [DefaultRefCommands]。
func WithExclusions(e *Exclusions) TaggerOption {
	return func(t *Tagger) {
		if e != nil {
			t.exclusions = e
		}
	}
}

// NewTagger 为 terms 构建匹配器并返回 Tagger。
func NewTagger(terms []string, opts ...TaggerOption) (*Tagger, error) {
	patterns, err := BuildPatterns(terms)
	if err != nil {
		return nil, err
	}

	t := &Tagger{
		patterns:   patterns,
		marker:     []rune(DefaultMarker),
		exclusions: NewExclusions(DefaultTitleCommands, DefaultRefCommands),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Patterns 返回按处理顺序排列的匹配器。
func (t *Tagger) Patterns() []*Pattern {
	return t.patterns
}

// Apply 对 text 计算并执行标记插入，返回新文本与插入列表（按偏移升序）。
//
// 规则：
//   - 术语按长度降序处理；只考虑不在排除区间内、不与更长术语的出现重叠的出现
//   - 其中任一出现后已有标记的术语视为已处理，跳过
//   - 否则在其中首个后面是空白或文本结尾的出现后插入
//   - 每个术语处理完后，其全部出现都被占用，较短术语不能再命中其中
//
// 对已处理过的输出再次调用不会产生新的插入。
func (t *Tagger) Apply(text string) (string, []Insertion, error) {
	src := []rune(text)
	zones := t.exclusions.Ranges(src)

	var claimed []Range
	var inserts []Insertion
	for _, p := range t.patterns {
		spans, err := p.FindAll(src)
		if err != nil {
			return "", nil, err
		}
		if len(spans) == 0 {
			continue
		}

		// 只有排除区间与更长术语之外的出现才参与判断
		eligible := slices.DeleteFunc(slices.Clone(spans), func(s Range) bool {
			return overlapsAny(zones, s) || overlapsAny(claimed, s)
		})
		if !slices.ContainsFunc(eligible, func(s Range) bool { return t.markedAt(src, s.End) }) {
			i := slices.IndexFunc(eligible, func(s Range) bool { return followedBySpace(src, s.End) })
			if i >= 0 {
				s := eligible[i]
				inserts = append(inserts, Insertion{
					Offset: s.End,
					Term:   p.Term,
					Match:  string(src[s.Start:s.End]),
					Text:   string(t.marker),
				})
			}
		}
		claimed = append(claimed, spans...)
	}

	if len(inserts) == 0 {
		return text, nil, nil
	}

	slices.SortFunc(inserts, func(a, b Insertion) int { return a.Offset - b.Offset })
	out := make([]rune, 0, len(src)+len(inserts)*len(t.marker))
	prev, line := 0, 1
	for i := range inserts {
		ins := &inserts[i]
		for _, r := range src[prev:ins.Offset] {
			if r == '\n' {
				line++
			}
		}
		ins.Line = line
		out = append(out, src[prev:ins.Offset]...)
		out = append(out, t.marker...)
		prev = ins.Offset
	}
	out = append(out, src[prev:]...)

	return string(out), inserts, nil
}

func (t *Tagger) markedAt(src []rune, pos int) bool {
	return pos+len(t.marker) <= len(src) && slices.Equal(src[pos:pos+len(t.marker)], t.marker)
}

func followedBySpace(src []rune, pos int) bool {
	return pos >= len(src) || unicode.IsSpace(src[pos])
}
