package editor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// SetSearch 设置查找内容与替换文本，供 find 与 replace 动作使用
func (b *Buffer) SetSearch(query, replacement string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query, b.replace = query, replacement
}

// SetSearchOptions 设置查找选项
func (b *Buffer) SetSearchOptions(opts SearchOptions) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.options = opts
}

// FindText 查找所有匹配位置
func (b *Buffer) FindText(query string, opts SearchOptions) ([]Range, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.findText(query, opts)
}

func (b *Buffer) findText(query string, opts SearchOptions) ([]Range, error) {
	if query == "" {
		return nil, ErrNoQuery
	}
	pattern := regexp.QuoteMeta(query)
	if opts.RegExp {
		pattern = query
	}
	if opts.WholeWord {
		pattern = `\b(?:` + pattern + `)\b`
	}
	if !opts.CaseSensitive {
		pattern = `(?i)` + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}

	var results []Range
	for i, line := range b.lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			results = append(results, Range{
				Start: Position{Line: i, Column: loc[0]},
				End:   Position{Line: i, Column: loc[1]},
			})
		}
	}
	return results, nil
}

// FindNext 从光标之后查找下一个匹配并选中，到末尾后从头开始
func (b *Buffer) FindNext() (Range, error) {
	return b.step(true)
}

// FindPrevious 从光标之前查找上一个匹配并选中
func (b *Buffer) FindPrevious() (Range, error) {
	return b.step(false)
}

func (b *Buffer) step(forward bool) (Range, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stepLocked(forward)
}

func (b *Buffer) stepLocked(forward bool) (Range, error) {
	if b.query == "" {
		return Range{}, ErrNoQuery
	}
	matches, err := b.findText(b.query, b.options)
	if err != nil {
		return Range{}, err
	}
	if len(matches) == 0 {
		return Range{}, fmt.Errorf("%w: %s", ErrNoMatch, b.query)
	}

	// 当前选区正好是匹配时，从选区起点继续
	from := b.cursor
	if b.sel != nil {
		from = b.sel.Start
	}
	var found Range
	if forward {
		found = matches[0]
		for _, m := range matches {
			if from.Before(m.Start) {
				found = m
				break
			}
		}
	} else {
		found = matches[len(matches)-1]
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i].Start.Before(from) {
				found = matches[i]
				break
			}
		}
	}
	b.sel = &found
	b.cursor = found.Start
	return found, nil
}

// ReplaceAll 替换所有匹配，返回替换次数
func (b *Buffer) ReplaceAll(query, replacement string, opts SearchOptions) (int, error) {
	var n int
	err := b.mutate(func() error {
		var err error
		n, err = b.replaceAll(query, replacement, opts)
		return err
	})
	return n, err
}

func (b *Buffer) replaceAll(query, replacement string, opts SearchOptions) (int, error) {
	ranges, err := b.findText(query, opts)
	if err != nil {
		return 0, err
	}
	if len(ranges) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoMatch, query)
	}
	// 从后向前应用，前面的位置不受影响
	sort.Slice(ranges, func(i, j int) bool { return ranges[j].Start.Before(ranges[i].Start) })
	cursor := b.cursor
	for _, r := range ranges {
		line := b.lines[r.Start.Line]
		b.lines[r.Start.Line] = line[:r.Start.Column] + replacement + line[r.End.Column:]
	}
	if b.valid(cursor) {
		b.cursor = cursor
	} else {
		b.cursor = Position{Line: cursor.Line, Column: len(b.lines[cursor.Line])}
	}
	b.sel = nil
	return len(ranges), nil
}

// wordAt 光标所在的单词
func wordAt(line string, column int) string {
	if column > len(line) {
		return ""
	}
	start := column
	for start > 0 && isWordChar(rune(line[start-1])) {
		start--
	}
	end := column
	for end < len(line) && isWordChar(rune(line[end])) {
		end++
	}
	return strings.TrimSpace(line[start:end])
}

func isWordChar(char rune) bool {
	return (char >= 'a' && char <= 'z') ||
		(char >= 'A' && char <= 'Z') ||
		(char >= '0' && char <= '9') ||
		char == '_'
}
