package editor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sjzsdu/speak/voice"
)

// Trigger 按名称执行编辑器动作
func (b *Buffer) Trigger(action string) error {
	switch action {
	case voice.ActionUndo:
		return b.Undo()
	case voice.ActionRedo:
		return b.Redo()
	case voice.ActionSelectAll:
		b.locked(b.selectAll)
		return nil
	case voice.ActionClipboardCopy:
		b.locked(b.copySelection)
		return nil
	case voice.ActionNextMatchFind:
		_, err := b.FindNext()
		return err
	case voice.ActionPrevMatchFind:
		_, err := b.FindPrevious()
		return err
	case voice.ActionFind:
		return b.find()
	}

	edit, ok := b.edits()[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	return b.mutate(edit)
}

func (b *Buffer) locked(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

func (b *Buffer) edits() map[string]func() error {
	return map[string]func() error{
		voice.ActionClipboardCut:     b.cut,
		voice.ActionClipboardPaste:   b.paste,
		voice.ActionFormatDocument:   b.format,
		voice.ActionCommentLine:      b.toggleComment,
		voice.ActionCopyLinesDown:    b.duplicateLines,
		voice.ActionDeleteLines:      b.deleteLines,
		voice.ActionMoveLinesUp:      func() error { return b.moveLines(-1) },
		voice.ActionMoveLinesDown:    func() error { return b.moveLines(1) },
		voice.ActionIndentLines:      b.indent,
		voice.ActionOutdentLines:     b.outdent,
		voice.ActionStartFindReplace: b.replaceQuery,
	}
}

// Clipboard 内部剪贴板内容
func (b *Buffer) Clipboard() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clip
}

// SetClipboard 设置内部剪贴板
func (b *Buffer) SetClipboard(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clip = text
}

func (b *Buffer) selectAll() {
	last := len(b.lines) - 1
	b.sel = &Range{End: Position{Line: last, Column: len(b.lines[last])}}
	b.cursor = b.sel.End
}

// copySelection 没有选区时复制整行
func (b *Buffer) copySelection() {
	if b.sel != nil && !b.sel.Empty() {
		b.clip, _ = b.textInRange(*b.sel)
		return
	}
	b.clip = b.lines[b.cursor.Line] + "\n"
}

func (b *Buffer) cut() error {
	b.copySelection()
	if b.sel != nil && !b.sel.Empty() {
		return b.applyEdit(TextEdit{Range: *b.sel})
	}
	return b.deleteLines()
}

func (b *Buffer) paste() error {
	if b.clip == "" {
		return ErrEmptyClipboard
	}
	return b.insert(b.clip)
}

func (b *Buffer) format() error {
	unit := strings.Repeat(" ", b.tabSize)
	b.lines = formatLines(b.lines, unit)
	line := min(b.cursor.Line, len(b.lines)-1)
	b.cursor = Position{Line: line, Column: min(b.cursor.Column, len(b.lines[line]))}
	b.sel = nil
	return nil
}

// toggleComment 所有非空行都已注释时取消注释，否则全部加注释
func (b *Buffer) toggleComment() error {
	prefix := commentPrefix(b.language)
	start, end := b.lineSpan()

	commented := true
	for i := start; i <= end; i++ {
		trimmed := strings.TrimSpace(b.lines[i])
		if trimmed != "" && !strings.HasPrefix(trimmed, prefix) {
			commented = false
			break
		}
	}

	for i := start; i <= end; i++ {
		line := b.lines[i]
		indent := extractIndent(line)
		body := line[len(indent):]
		switch {
		case body == "":
		case commented:
			body = strings.TrimPrefix(body, prefix)
			body = strings.TrimPrefix(body, " ")
		default:
			body = prefix + " " + body
		}
		b.lines[i] = indent + body
	}
	b.clampCursor()
	return nil
}

func (b *Buffer) duplicateLines() error {
	start, end := b.lineSpan()
	block := slices.Clone(b.lines[start : end+1])
	b.lines = slices.Insert(b.lines, end+1, block...)
	b.cursor.Line += len(block)
	b.sel = nil
	return nil
}

func (b *Buffer) deleteLines() error {
	start, end := b.lineSpan()
	b.lines = slices.Delete(b.lines, start, end+1)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	b.cursor = Position{Line: min(start, len(b.lines)-1)}
	b.sel = nil
	return nil
}

// moveLines 整块上移或下移一行，到达边界时不变
func (b *Buffer) moveLines(dir int) error {
	start, end := b.lineSpan()
	if (dir < 0 && start == 0) || (dir > 0 && end == len(b.lines)-1) {
		return nil
	}
	block := slices.Clone(b.lines[start : end+1])
	if dir < 0 {
		above := b.lines[start-1]
		copy(b.lines[start-1:], block)
		b.lines[end] = above
	} else {
		below := b.lines[end+1]
		copy(b.lines[start+1:], block)
		b.lines[start] = below
	}
	b.cursor.Line += dir
	if b.sel != nil {
		b.sel.Start.Line += dir
		b.sel.End.Line += dir
	}
	return nil
}

func (b *Buffer) indent() error {
	unit := strings.Repeat(" ", b.tabSize)
	start, end := b.lineSpan()
	for i := start; i <= end; i++ {
		if b.lines[i] != "" {
			b.lines[i] = unit + b.lines[i]
		}
	}
	if c := b.cursor.Line; c >= start && c <= end && b.lines[c] != "" {
		b.cursor.Column += len(unit)
	}
	b.sel = nil
	return nil
}

func (b *Buffer) outdent() error {
	start, end := b.lineSpan()
	for i := start; i <= end; i++ {
		line := b.lines[i]
		switch {
		case strings.HasPrefix(line, "\t"):
			line = line[1:]
		default:
			n := 0
			for n < b.tabSize && n < len(line) && line[n] == ' ' {
				n++
			}
			line = line[n:]
		}
		b.lines[i] = line
	}
	b.clampCursor()
	b.sel = nil
	return nil
}

func (b *Buffer) replaceQuery() error {
	if b.query == "" {
		return ErrNoQuery
	}
	_, err := b.replaceAll(b.query, b.replace, b.options)
	return err
}

// find 没有设置查找内容时使用光标所在的单词
func (b *Buffer) find() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.query == "" {
		b.query = wordAt(b.lines[b.cursor.Line], b.cursor.Column)
	}
	_, err := b.stepLocked(true)
	return err
}

func (b *Buffer) clampCursor() {
	line := b.lines[b.cursor.Line]
	if b.cursor.Column > len(line) {
		b.cursor.Column = len(line)
	}
}
