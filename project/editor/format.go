package editor

import "strings"

// commentPrefixes 行注释前缀，未列出的语言使用 "//"
var commentPrefixes = map[string]string{
	"python":     "#",
	"ruby":       "#",
	"shell":      "#",
	"yaml":       "#",
	"toml":       "#",
	"ini":        ";",
	"dockerfile": "#",
	"sql":        "--",
	"plaintext":  "#",
}

func commentPrefix(language string) string {
	if p, ok := commentPrefixes[language]; ok {
		return p
	}
	return "//"
}

// formatLines 按括号重新缩进，去掉行尾空白，空行保持为空
func formatLines(lines []string, unit string) []string {
	out := make([]string, 0, len(lines))
	level := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		if strings.HasPrefix(trimmed, "}") ||
			strings.HasPrefix(trimmed, ")") ||
			strings.HasPrefix(trimmed, "]") {
			level = max(0, level-1)
		}
		out = append(out, strings.Repeat(unit, level)+trimmed)
		if endsWithOpenBrace(trimmed) {
			level++
		}
	}
	return out
}

func extractIndent(line string) string {
	for i, char := range line {
		if char != ' ' && char != '\t' {
			return line[:i]
		}
	}
	return line
}

func endsWithOpenBrace(line string) bool {
	return strings.HasSuffix(line, "{") ||
		strings.HasSuffix(line, "(") ||
		strings.HasSuffix(line, "[")
}
