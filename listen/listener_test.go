package listen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func appendLine(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(3 * time.Second):
		t.Fatal("no utterance received")
		return ""
	}
}

func transcript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileListenerFeedsAppendedLines(t *testing.T) {
	path := transcript(t, "old line\n")
	heard := make(chan string, 10)
	l := NewFileListener(path, func(_ context.Context, u string) { heard <- u })

	require.NoError(t, l.Start(context.Background()))
	assert.True(t, l.Listening())
	assert.ErrorIs(t, l.Start(context.Background()), ErrAlreadyListening)

	appendLine(t, path, "create file app.js\n")
	assert.Equal(t, "create file app.js", receive(t, heard))

	// 不完整的行等到换行再处理
	appendLine(t, path, "go to ")
	appendLine(t, path, "line 3\n\n")
	assert.Equal(t, "go to line 3", receive(t, heard))

	l.Stop()
	require.NoError(t, l.Wait())
	assert.False(t, l.Listening())
}

func TestFileListenerFromStart(t *testing.T) {
	path := transcript(t, "save\nundo\n")
	heard := make(chan string, 10)
	l := NewFileListener(path, func(_ context.Context, u string) { heard <- u }, FromStart())

	require.NoError(t, l.Start(context.Background()))
	assert.Equal(t, "save", receive(t, heard))
	assert.Equal(t, "undo", receive(t, heard))
	l.Stop()
	require.NoError(t, l.Wait())
}

func TestFileListenerStopFromHandler(t *testing.T) {
	path := transcript(t, "")
	var l *FileListener
	var heard []string
	l = NewFileListener(path, func(_ context.Context, u string) {
		heard = append(heard, u)
		if u == "stop listening" {
			l.Stop()
		}
	})
	require.NoError(t, l.Start(context.Background()))

	appendLine(t, path, "stop listening\nsave\n")
	require.NoError(t, l.Wait())
	assert.Equal(t, []string{"stop listening"}, heard)
	assert.False(t, l.Listening())
}

func TestFileListenerContextCancel(t *testing.T) {
	path := transcript(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	l := NewFileListener(path, func(context.Context, string) {})
	require.NoError(t, l.Start(ctx))
	cancel()
	require.NoError(t, l.Wait())
	assert.False(t, l.Listening())
}

func TestFileListenerMissingTranscript(t *testing.T) {
	l := NewFileListener(filepath.Join(t.TempDir(), "missing.txt"), func(context.Context, string) {})
	assert.Error(t, l.Start(context.Background()))
	assert.False(t, l.Listening())
	l.Stop()
	assert.NoError(t, l.Wait())
}
