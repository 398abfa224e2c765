// Package editor 提供一个无界面的文本缓冲区，执行语音指令中的编辑器动作
package editor

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	ErrOutOfRange     = errors.New("position out of range")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrEmptyClipboard = errors.New("clipboard is empty")
	ErrNoQuery        = errors.New("no search query")
	ErrNoMatch        = errors.New("no match")
	ErrUnknownAction  = errors.New("unknown editor action")
)

const historyLimit = 100

// Position 文本中的位置，行列均从 0 开始
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Before p 是否在 q 之前
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Column < q.Column)
}

// Range 文本范围，End 不包含在内
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Empty 起止相同
func (r Range) Empty() bool { return r.Start == r.End }

// TextEdit 对文本的单个编辑操作
type TextEdit struct {
	Range
	NewText string
}

// SearchOptions 搜索选项
type SearchOptions struct {
	CaseSensitive bool
	WholeWord     bool
	RegExp        bool
}

type state struct {
	lines  []string
	cursor Position
}

// Buffer 单个文件的编辑缓冲区，带光标、选区、撤销栈与内部剪贴板
type Buffer struct {
	mu       sync.Mutex
	lines    []string
	cursor   Position
	sel      *Range
	undo     []state
	redo     []state
	clip     string
	query    string
	replace  string
	options  SearchOptions
	language string
	tabSize  int
	onChange func(content string)
}

// NewBuffer 创建缓冲区，tabSize 决定缩进宽度
func NewBuffer(content, language string, tabSize int) *Buffer {
	if tabSize <= 0 {
		tabSize = 2
	}
	return &Buffer{lines: splitLines(content), language: language, tabSize: tabSize}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// OnChange 内容变化后回调，回调在锁外执行
func (b *Buffer) OnChange(fn func(content string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Load 替换全部内容并清空历史，不触发回调
func (b *Buffer) Load(content, language string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = splitLines(content)
	b.language = language
	b.cursor = Position{}
	b.sel = nil
	b.undo, b.redo = nil, nil
}

// Language 当前语言
func (b *Buffer) Language() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.language
}

// SetLanguage 只改语言，内容与撤销历史保留
func (b *Buffer) SetLanguage(language string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.language = language
}

// SetTabSize 修改缩进宽度
func (b *Buffer) SetTabSize(n int) {
	if n <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabSize = n
}

// Text 当前内容
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text()
}

func (b *Buffer) text() string { return strings.Join(b.lines, "\n") }

// Line 第 i 行（从 0 开始）
func (b *Buffer) Line(i int) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.lines) {
		return "", fmt.Errorf("%w: line %d", ErrOutOfRange, i)
	}
	return b.lines[i], nil
}

// LineCount 行数，空文档为 1
func (b *Buffer) LineCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Cursor 光标位置
func (b *Buffer) Cursor() Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// Selection 当前选区
func (b *Buffer) Selection() (Range, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sel == nil {
		return Range{}, false
	}
	return *b.sel, true
}

// Select 设置选区，光标移到选区末尾
func (b *Buffer) Select(r Range) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.valid(r.Start) || !b.valid(r.End) || r.End.Before(r.Start) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, r)
	}
	b.sel = &r
	b.cursor = r.End
	return nil
}

// MoveCursor 移动光标并清除选区
func (b *Buffer) MoveCursor(p Position) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.valid(p) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, p)
	}
	b.cursor = p
	b.sel = nil
	return nil
}

// GoToLine 光标移到第 line 行（从 1 开始）行首
func (b *Buffer) GoToLine(line int) error {
	return b.MoveCursor(Position{Line: line - 1})
}

func (b *Buffer) valid(p Position) bool {
	return p.Line >= 0 && p.Line < len(b.lines) && p.Column >= 0 && p.Column <= len(b.lines[p.Line])
}

func (b *Buffer) snapshot() state {
	return state{lines: slices.Clone(b.lines), cursor: b.cursor}
}

func (b *Buffer) restore(s state) {
	b.lines = s.lines
	b.cursor = s.cursor
	b.sel = nil
}

// mutate 在锁内执行 fn。fn 失败时回滚；内容变化时记录撤销历史并回调。
func (b *Buffer) mutate(fn func() error) error {
	b.mu.Lock()
	before := b.snapshot()
	if err := fn(); err != nil {
		b.lines, b.cursor = before.lines, before.cursor
		b.mu.Unlock()
		return err
	}
	changed := !slices.Equal(before.lines, b.lines)
	if changed {
		b.undo = append(b.undo, before)
		if len(b.undo) > historyLimit {
			b.undo = b.undo[len(b.undo)-historyLimit:]
		}
		b.redo = nil
	}
	cb, text := b.onChange, b.text()
	b.mu.Unlock()

	if changed && cb != nil {
		cb(text)
	}
	return nil
}

// Undo 撤销上一次修改
func (b *Buffer) Undo() error {
	return b.travel(&b.undo, &b.redo, ErrNothingToUndo)
}

// Redo 重做上一次撤销
func (b *Buffer) Redo() error {
	return b.travel(&b.redo, &b.undo, ErrNothingToRedo)
}

func (b *Buffer) travel(from, to *[]state, empty error) error {
	b.mu.Lock()
	if len(*from) == 0 {
		b.mu.Unlock()
		return empty
	}
	last := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, b.snapshot())
	b.restore(last)
	cb, text := b.onChange, b.text()
	b.mu.Unlock()

	if cb != nil {
		cb(text)
	}
	return nil
}

// ApplyEdit 用 NewText 替换指定范围
func (b *Buffer) ApplyEdit(edit TextEdit) error {
	return b.mutate(func() error { return b.applyEdit(edit) })
}

func (b *Buffer) applyEdit(edit TextEdit) error {
	start, end := edit.Start, edit.End
	if !b.valid(start) || !b.valid(end) || end.Before(start) {
		return fmt.Errorf("%w: [%d,%d] - [%d,%d]", ErrOutOfRange,
			start.Line, start.Column, end.Line, end.Column)
	}

	edited := b.lines[start.Line][:start.Column] + edit.NewText + b.lines[end.Line][end.Column:]
	inserted := strings.Split(edited, "\n")

	lines := make([]string, 0, len(b.lines)-(end.Line-start.Line)+len(inserted))
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines

	newLines := strings.Split(edit.NewText, "\n")
	if len(newLines) == 1 {
		b.cursor = Position{Line: start.Line, Column: start.Column + len(edit.NewText)}
	} else {
		b.cursor = Position{Line: start.Line + len(newLines) - 1, Column: len(newLines[len(newLines)-1])}
	}
	b.sel = nil
	return nil
}

// TextInRange 取指定范围的文本
func (b *Buffer) TextInRange(r Range) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.textInRange(r)
}

func (b *Buffer) textInRange(r Range) (string, error) {
	if !b.valid(r.Start) || !b.valid(r.End) || r.End.Before(r.Start) {
		return "", fmt.Errorf("%w: %v", ErrOutOfRange, r)
	}
	if r.Start.Line == r.End.Line {
		return b.lines[r.Start.Line][r.Start.Column:r.End.Column], nil
	}
	var result strings.Builder
	result.WriteString(b.lines[r.Start.Line][r.Start.Column:])
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		result.WriteString("\n")
		result.WriteString(b.lines[i])
	}
	result.WriteString("\n")
	result.WriteString(b.lines[r.End.Line][:r.End.Column])
	return result.String(), nil
}

// InsertText 在光标处插入文本，有选区时替换选区
func (b *Buffer) InsertText(text string) error {
	return b.mutate(func() error { return b.insert(text) })
}

func (b *Buffer) insert(text string) error {
	r := Range{Start: b.cursor, End: b.cursor}
	if b.sel != nil {
		r = *b.sel
	}
	return b.applyEdit(TextEdit{Range: r, NewText: text})
}

// lineSpan 选区覆盖的行；选区结束于下一行行首时不包含该行
func (b *Buffer) lineSpan() (int, int) {
	if b.sel == nil {
		return b.cursor.Line, b.cursor.Line
	}
	start, end := b.sel.Start.Line, b.sel.End.Line
	if end > start && b.sel.End.Column == 0 {
		end--
	}
	return start, end
}
