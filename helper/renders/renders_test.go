package renders

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)
	require.NoError(t, r.WriteStream("hello "))
	require.NoError(t, r.WriteStream("world\n"))
	r.Done()
	assert.Equal(t, "hello world\n", buf.String())
}

func TestBlockBoundary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"no blank line", "# Title\nbody", 0},
		{"paragraph done", "# Title\n\nrest", len("# Title\n\n")},
		{"blank line inside fence", "```go\nfunc a() {}\n\n", 0},
		{"after closed fence", "```\nx\n```\n\nnext", len("```\nx\n```\n\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blockBoundary(tt.in))
		})
	}
}

func TestMarkdownRendererFlushesOnDone(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewMarkdownRenderer(&buf, "notty")
	require.NoError(t, err)

	require.NoError(t, r.WriteStream("# Voice commands\n"))
	assert.Empty(t, buf.String())

	require.NoError(t, r.WriteStream("\n- `save`\n"))
	assert.Contains(t, buf.String(), "Voice commands")
	assert.NotContains(t, buf.String(), "save")

	r.Done()
	assert.Contains(t, buf.String(), "save")
}
