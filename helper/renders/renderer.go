package renders

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Renderer 流式输出，Done 表示一段回复结束
type Renderer interface {
	WriteStream(content string) error
	Done()
}

// TextRenderer 原样输出
type TextRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTextRenderer out 为 nil 时写标准输出
func NewTextRenderer(out io.Writer) *TextRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TextRenderer{out: out}
}

func (t *TextRenderer) WriteStream(content string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprint(t.out, content)
	return err
}

func (t *TextRenderer) Done() {}
