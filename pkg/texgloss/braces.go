package texgloss

// Range 是文本中的半开区间 [Start, End)，以 rune 为单位。
type Range struct {
	Start int
	End   int
}

// Overlaps 判断两个区间是否相交。
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

func overlapsAny(ranges []Range, r Range) bool {
	for _, x := range ranges {
		if x.Overlaps(r) {
			return true
		}
	}

	return false
}

// MatchDelim 返回与 open 位置的左定界符配对的右定界符下标。
//
// 反斜杠转义的字符（如 \{ 与 \}）不参与计数；未闭合时返回 -1。
func MatchDelim(src []rune, open int, left, right rune) int {
	if open < 0 || open >= len(src) || src[open] != left {
		return -1
	}

	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case left:
			depth++
		case right:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// MatchBrace 是 [MatchDelim] 针对花括号的简写。
func MatchBrace(src []rune, open int) int {
	return MatchDelim(src, open, '{', '}')
}
