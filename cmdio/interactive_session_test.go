package cmdio_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sjzsdu/speak/cmdio"
	"github.com/sjzsdu/speak/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 模拟渲染器
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) WriteStream(content string) error {
	args := m.Called(content)
	return args.Error(0)
}

func (m *MockRenderer) Done() {
	m.Called()
}

// 模拟解释器
type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Handle(ctx context.Context, utterance string) (voice.Effect, error) {
	args := m.Called(ctx, utterance)
	return args.Get(0).(voice.Effect), args.Error(1)
}

// 按顺序返回预设输入，用完后返回 io.EOF
func scripted(inputs ...string) cmdio.InputStringFunc {
	i := 0
	return func(string) (string, error) {
		if i >= len(inputs) {
			return "", io.EOF
		}
		i++
		return inputs[i-1], nil
	}
}

func newRenderer() *MockRenderer {
	r := new(MockRenderer)
	r.On("WriteStream", mock.Anything).Return(nil)
	r.On("Done").Return()
	return r
}

func written(r *MockRenderer) []string {
	var out []string
	for _, c := range r.Calls {
		if c.Method == "WriteStream" {
			out = append(out, c.Arguments.String(0))
		}
	}
	return out
}

func TestNewInteractiveSession(t *testing.T) {
	t.Run("DefaultOptions", func(t *testing.T) {
		session := cmdio.NewInteractiveSession(new(MockHandler))
		assert.NotNil(t, session)
		assert.NotNil(t, session.Renderer())
		assert.True(t, session.IsExitCommand("quit"))
		assert.True(t, session.IsExitCommand("Q"))
	})

	t.Run("CustomOptions", func(t *testing.T) {
		r := new(MockRenderer)
		session := cmdio.NewInteractiveSession(
			new(MockHandler),
			cmdio.WithRenderer(r),
			cmdio.WithPrompt("🎤 "),
			cmdio.WithExitCommands("bye"),
		)
		assert.Same(t, r, session.Renderer())
		assert.True(t, session.IsExitCommand(" BYE "))
		assert.False(t, session.IsExitCommand("quit"))
	})
}

func TestStartRendersEffects(t *testing.T) {
	h := new(MockHandler)
	h.On("Handle", mock.Anything, "create file app.js").Return(voice.Effect{
		Notification: voice.Notification{Message: "Created file: app.js", Severity: voice.SeveritySuccess},
	}, nil)
	h.On("Handle", mock.Anything, "format").Return(voice.Effect{
		Notification: voice.Notification{Message: "Code formatted", Severity: voice.SeveritySuccess},
		Action:       "editor.action.formatDocument",
	}, nil)
	r := newRenderer()

	session := cmdio.NewInteractiveSession(h,
		cmdio.WithRenderer(r),
		cmdio.WithWelcome("welcome"),
		cmdio.WithTips("tip one", "tip two"),
		cmdio.WithInputFunc(scripted("create file app.js", "  ", "format", "exit", "never read")),
	)
	require.NoError(t, session.Start(context.Background()))

	out := written(r)
	require.Len(t, out, 6)
	assert.Equal(t, "welcome\n", out[0])
	assert.Equal(t, "tip one\n", out[1])
	assert.Equal(t, "tip two\n", out[2])
	assert.Equal(t, "✓ Created file: app.js\n", out[3])
	assert.Equal(t, "✓ Code formatted\n  → editor.action.formatDocument\n", out[4])
	h.AssertNumberOfCalls(t, "Handle", 2)
}

func TestStartReportsBusy(t *testing.T) {
	h := new(MockHandler)
	h.On("Handle", mock.Anything, "save").Return(voice.Effect{}, voice.ErrBusy)
	r := newRenderer()

	session := cmdio.NewInteractiveSession(h, cmdio.WithRenderer(r), cmdio.WithInputFunc(scripted("save")))
	require.NoError(t, session.Start(context.Background()))

	out := written(r)
	require.Len(t, out, 1)
	assert.True(t, strings.HasPrefix(out[0], "⚠ "))
	assert.Contains(t, out[0], voice.ErrBusy.Error())
}

func TestStartSkipsInputErrors(t *testing.T) {
	calls := 0
	input := func(string) (string, error) {
		calls++
		switch calls {
		case 1:
			return "", errors.New("terminal hiccup")
		case 2:
			return "help", nil
		default:
			return "", io.EOF
		}
	}
	h := new(MockHandler)
	h.On("Handle", mock.Anything, "help").Return(voice.Effect{
		Notification: voice.Notification{Message: "Opening help", Severity: voice.SeverityInfo},
	}, nil)
	r := newRenderer()

	session := cmdio.NewInteractiveSession(h, cmdio.WithRenderer(r), cmdio.WithInputFunc(input))
	require.NoError(t, session.Start(context.Background()))
	assert.Equal(t, 3, calls)
	h.AssertExpectations(t)
}

func TestStartEcho(t *testing.T) {
	h := new(MockHandler)
	h.On("Handle", mock.Anything, "undo").Return(voice.Effect{}, nil)
	r := newRenderer()

	session := cmdio.NewInteractiveSession(h,
		cmdio.WithRenderer(r),
		cmdio.WithPrompt("> "),
		cmdio.WithEcho(true),
		cmdio.WithInputFunc(scripted("undo")),
	)
	require.NoError(t, session.Start(context.Background()))
	assert.Contains(t, written(r), "> undo\n")
}

func TestStartCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := new(MockHandler)
	h.On("Handle", mock.Anything, "save").Return(voice.Effect{}, context.Canceled).Run(func(mock.Arguments) { cancel() })

	session := cmdio.NewInteractiveSession(h, cmdio.WithRenderer(newRenderer()), cmdio.WithInputFunc(scripted("save", "save")))
	err := session.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	h.AssertNumberOfCalls(t, "Handle", 1)
}

func TestStartRequiresHandler(t *testing.T) {
	session := cmdio.NewInteractiveSession(nil, cmdio.WithRenderer(newRenderer()))
	assert.Error(t, session.Start(context.Background()))
}

func TestFormatEffect(t *testing.T) {
	assert.Empty(t, cmdio.FormatEffect(voice.Effect{}))
	assert.Equal(t, "✕ File not found: x\n", cmdio.FormatEffect(voice.Effect{
		Notification: voice.Notification{Message: "File not found: x", Severity: voice.SeverityError},
	}))
}
