package texgloss

// DefaultTitleCommands 的参数属于标题或图表说明，不插入标记。
var DefaultTitleCommands = []string{
	"part", "chapter", "section", "subsection", "subsubsection",
	"paragraph", "subparagraph", "caption",
}

// DefaultRefCommands 的参数都是链接或引用，不插入标记。
var DefaultRefCommands = []string{
	"href", "ref", "url", "path", "label", "hyperref",
	"autoref", "eqref", "pageref", "nameref", "cref", "Cref",
}

// refArity 记录花括号参数多于一个的引用命令，其余命令为 1。
var refArity = map[string]int{
	"href": 2,
}

// Exclusions 描述哪些命令的参数构成排除区间。
type Exclusions struct {
	titles map[string]bool
	refs   map[string]bool
}

// NewExclusions 根据命令名（不含反斜杠）构造排除规则。
//
// 标题命令排除可选的 [...] 参数和第一个 {...} 参数；
// 引用命令排除可选的 [...] 参数和固定数量的 {...} 参数（\href 为 2 个，其余 1 个）。
func NewExclusions(titles, refs []string) *Exclusions {
	e := &Exclusions{
		titles: make(map[string]bool, len(titles)),
		refs:   make(map[string]bool, len(refs)),
	}
	for _, c := range titles {
		e.titles[c] = true
	}
	for _, c := range refs {
		e.refs[c] = true
	}

	return e
}

// Ranges 扫描 src 并返回所有排除区间（参数内部，不含定界符），按起点升序。
func (e *Exclusions) Ranges(src []rune) []Range {
	var zones []Range
	for i := 0; i < len(src); i++ {
		if src[i] != '\\' {
			continue
		}
		j := i + 1
		for j < len(src) && isASCIILetter(src[j]) {
			j++
		}
		if j == i+1 {
			// \\、\{ 等控制符号
			i++
			continue
		}
		name := string(src[i+1 : j])
		if j < len(src) && src[j] == '*' {
			j++
		}

		switch {
		case e.titles[name]:
			zones, j = argumentZones(src, j, 1, zones)
		case e.refs[name]:
			zones, j = argumentZones(src, j, max(refArity[name], 1), zones)
		}
		i = j - 1
	}

	return zones
}

// argumentZones 从 pos 开始收集命令参数区间。
//
// 收集到第 braces 个花括号参数为止，其间的 [...] 参数一并收集。
// 未闭合的参数延伸到文本末尾。
func argumentZones(src []rune, pos, braces int, zones []Range) ([]Range, int) {
	seen := 0
	for pos < len(src) {
		k := pos
		for k < len(src) && (src[k] == ' ' || src[k] == '\t') {
			k++
		}
		if k >= len(src) {
			return zones, pos
		}

		var end int
		switch src[k] {
		case '[':
			end = MatchDelim(src, k, '[', ']')
		case '{':
			end = MatchBrace(src, k)
			seen++
		default:
			return zones, pos
		}
		if end == -1 {
			return append(zones, Range{Start: k + 1, End: len(src)}), len(src)
		}
		zones = append(zones, Range{Start: k + 1, End: end})
		pos = end + 1

		if seen >= braces {
			break
		}
	}

	return zones, pos
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
