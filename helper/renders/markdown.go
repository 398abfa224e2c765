package renders

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer 用 glamour 渲染 Markdown。流式写入的内容按块缓冲，
// 遇到代码块外的空行才渲染，Done 输出剩余部分。
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	out      io.Writer

	mu     sync.Mutex
	buffer strings.Builder
}

// NewMarkdownRenderer 创建 Markdown 渲染器，out 为 nil 时写标准输出。
// style 为空时根据终端背景自动选择。
func NewMarkdownRenderer(out io.Writer, style string) (*MarkdownRenderer, error) {
	if out == nil {
		out = os.Stdout
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(120))
	if err != nil {
		return nil, fmt.Errorf("初始化 Markdown 渲染器失败: %w", err)
	}
	return &MarkdownRenderer{renderer: renderer, out: out}, nil
}

func (m *MarkdownRenderer) WriteStream(content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buffer.WriteString(content)
	pending := m.buffer.String()
	cut := blockBoundary(pending)
	if cut <= 0 {
		return nil
	}
	m.buffer.Reset()
	m.buffer.WriteString(pending[cut:])
	return m.render(pending[:cut])
}

func (m *MarkdownRenderer) Done() {
	m.mu.Lock()
	defer m.mu.Unlock()

	rest := m.buffer.String()
	m.buffer.Reset()
	if strings.TrimSpace(rest) != "" {
		m.render(rest)
	}
}

// blockBoundary 最后一个位于代码块之外的空行之后的位置，没有时返回 0
func blockBoundary(s string) int {
	inFence := false
	boundary := 0
	offset := 0
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		offset += len(line)
		if !strings.HasSuffix(line, "\n") {
			break
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if !inFence && trimmed == "" && i > 0 {
			boundary = offset
		}
	}
	return boundary
}

// render 渲染失败时原样输出
func (m *MarkdownRenderer) render(content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		_, werr := io.WriteString(m.out, content)
		return werr
	}
	for strings.Contains(rendered, "\n\n\n") {
		rendered = strings.ReplaceAll(rendered, "\n\n\n", "\n\n")
	}
	_, err = io.WriteString(m.out, rendered)
	return err
}
