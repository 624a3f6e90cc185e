package texgloss

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// DefaultTermCommand 是术语定义宏的默认名称，即 \term{...}。
const DefaultTermCommand = "term"

// nestedCommand 匹配术语内部嵌套的格式化命令（连同其参数一起移除）。
var nestedCommand = regexp.MustCompile(`\\[a-zA-Z]+\{[^}]*\}`)

// ExtractTerms 从文本中提取所有 \<command>{...} 定义的术语。
//
// 参数按花括号配对截取，支持嵌套；嵌套的 \cmd{...} 会被整体移除，
// 首尾空白被裁剪，内部连续空白折叠为一个空格，空结果被丢弃。
// command 为空时使用 [DefaultTermCommand]。
func ExtractTerms(text, command string) []string {
	if command == "" {
		command = DefaultTermCommand
	}
	opener := []rune(`\` + command + `{`)
	src := []rune(text)

	var terms []string
	for pos := 0; pos < len(src); {
		idx := indexRunes(src, opener, pos)
		if idx == -1 {
			break
		}
		open := idx + len(opener) - 1
		end := MatchBrace(src, open)
		if end == -1 {
			end = len(src)
		}

		if term := cleanTerm(string(src[open+1 : end])); term != "" {
			terms = append(terms, term)
		}
		pos = end + 1
	}

	return terms
}

func cleanTerm(raw string) string {
	stripped := nestedCommand.ReplaceAllString(strings.TrimSpace(raw), "")

	return strings.Join(strings.Fields(stripped), " ")
}

func indexRunes(src, sub []rune, from int) int {
	for i := from; i+len(sub) <= len(src); i++ {
		if slices.Equal(src[i:i+len(sub)], sub) {
			return i
		}
	}

	return -1
}

// LoadTerms 读取术语表文件及其旁边的字母分卷文件并提取术语。
//
// 分卷目录为 glossary 所在目录下的 lettersDir（相对路径），
// 其中扩展名为 ext 的文件按文件名字典序读取；目录不存在时忽略。
func LoadTerms(glossary, lettersDir, ext, command string) ([]string, error) {
	content, err := os.ReadFile(glossary) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read glossary %s: %w", glossary, err)
	}
	terms := ExtractTerms(string(content), command)

	if lettersDir == "" {
		return terms, nil
	}
	dir := filepath.Join(filepath.Dir(glossary), lettersDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return terms, nil
		}
		return nil, fmt.Errorf("read letters dir %s: %w", dir, err)
	}

	// os.ReadDir 已按文件名排序
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		letter, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
		if err != nil {
			return nil, fmt.Errorf("read letters file %s: %w", path, err)
		}
		terms = append(terms, ExtractTerms(string(letter), command)...)
	}

	return terms, nil
}
