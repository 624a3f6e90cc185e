package config

import (
	"fmt"
	"os"
	"strings"
)

// expandTemplate 展开配置文本中的 ${...} 引用。
//
// 支持语法：
//   - ${VAR} - 变量替换，未设置时为空
//   - ${VAR:-word} / ${VAR-word} - 为空或未设置 / 未设置时使用 word
//   - ${VAR:+word} / ${VAR+word} - 非空 / 已设置时使用 word，否则为空
//   - ${VAR:=word} / ${VAR=word} - 同 :- / -，并在本次展开中记住 VAR=word
//   - ${VAR:?msg} / ${VAR?msg} - 为空或未设置 / 未设置时报错
//   - $$ - 字面量 $
//
// word 中可以继续嵌套 ${...}；无法识别的表达式保持原样。
func expandTemplate(text string) (string, error) {
	e := &expander{assigned: map[string]string{}}

	return e.expand(text)
}

// expander 保存一次展开过程中 := 与 = 赋值的变量，优先于环境变量。
type expander struct {
	assigned map[string]string
}

func (e *expander) lookup(name string) (string, bool) {
	if val, ok := e.assigned[name]; ok {
		return val, true
	}

	return os.LookupEnv(name)
}

func (e *expander) expand(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); i++ {
		if text[i] != '$' || i+1 == len(text) {
			buf.WriteByte(text[i])
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i++
			continue
		case '{':
		default:
			buf.WriteByte('$')
			continue
		}

		end := closingBrace(text, i+2)
		if end == -1 {
			buf.WriteString(text[i:])
			break
		}
		val, err := e.param(text[i+2 : end])
		if err != nil {
			return "", err
		}
		buf.WriteString(val)
		i = end
	}

	return buf.String(), nil
}

func (e *expander) param(expr string) (string, error) {
	name, op, word, ok := splitParam(expr)
	if !ok {
		return "${" + expr + "}", nil
	}

	val, set := e.lookup(name)
	switch op {
	case ":-":
		if val == "" {
			return e.expand(word)
		}
	case "-":
		if !set {
			return e.expand(word)
		}
	case ":+":
		if val == "" {
			return "", nil
		}
		return e.expand(word)
	case "+":
		if !set {
			return "", nil
		}
		return e.expand(word)
	case ":=", "=":
		if (op == ":=" && val == "") || !set {
			v, err := e.expand(word)
			if err != nil {
				return "", err
			}
			e.assigned[name] = v
			return v, nil
		}
	case ":?":
		if val == "" {
			return "", paramError(name, word)
		}
	case "?":
		if !set {
			return "", paramError(name, word)
		}
	}

	return val, nil
}

// splitParam 将 "NAME:-word" 拆为名称、操作符与 word。
func splitParam(expr string) (name, op, word string, ok bool) {
	i := 0
	for i < len(expr) && isNameChar(expr[i], i == 0) {
		i++
	}
	if i == 0 {
		return "", "", "", false
	}

	name, rest := expr[:i], expr[i:]
	if rest == "" {
		return name, "", "", true
	}
	if len(rest) >= 2 && rest[0] == ':' && strings.ContainsRune("-+=?", rune(rest[1])) {
		return name, rest[:2], rest[2:], true
	}
	if strings.ContainsRune("-+=?", rune(rest[0])) {
		return name, rest[:1], rest[1:], true
	}

	return "", "", "", false
}

func isNameChar(ch byte, first bool) bool {
	switch {
	case ch == '_', ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z':
		return true
	case ch >= '0' && ch <= '9':
		return !first
	}

	return false
}

func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

func paramError(name, msg string) error {
	if msg == "" {
		msg = "parameter null or not set"
	}

	return fmt.Errorf("config: %s: %s", name, msg)
}
