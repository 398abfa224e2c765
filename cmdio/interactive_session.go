package cmdio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/helper/renders"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/notify"
	"github.com/sjzsdu/speak/voice"
)

// InputStringFunc 读取一条输入，返回 io.EOF 时会话结束
type InputStringFunc func(prompt string) (string, error)

// Handler 处理一句话，由 voice.Interpreter 实现
type Handler interface {
	Handle(ctx context.Context, utterance string) (voice.Effect, error)
}

// InteractiveSession 交互式会话：逐行读取指令交给解释器，并渲染结果
type InteractiveSession struct {
	Handler         Handler
	renderer        renders.Renderer
	welcome         string
	tips            []string
	prompt          string
	exitCommands    []string
	echo            bool
	inputStringFunc InputStringFunc
}

// NewInteractiveSession 创建新的交互式会话
func NewInteractiveSession(handler Handler, opts ...SessionOption) *InteractiveSession {
	s := &InteractiveSession{
		Handler:         handler,
		renderer:        helper.GetDefaultRenderer(),
		tips:            []string{},
		prompt:          "> ",
		exitCommands:    []string{"quit", "q", "exit"},
		inputStringFunc: helper.InputString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start 启动交互式会话，直到退出指令、输入结束或 ctx 取消
func (s *InteractiveSession) Start(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	if s.Handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	if s.welcome != "" {
		s.renderer.WriteStream(s.welcome + "\n")
	}
	for _, tip := range s.tips {
		s.renderer.WriteStream(tip + "\n")
	}
	s.renderer.Done()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := s.inputStringFunc(s.prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if !errors.Is(err, helper.ErrEmptyInput) {
				logger.Warn("read input failed", logger.Err(err))
			}
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if s.IsExitCommand(input) {
			s.renderer.WriteStream(lang.T("Voice session ended, goodbye!") + "\n")
			s.renderer.Done()
			return nil
		}

		if s.echo {
			s.renderer.WriteStream(s.prompt + input + "\n")
		}

		eff, err := s.Handler.Handle(ctx, input)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			s.renderer.WriteStream(fmt.Sprintf("%s %s: %v\n", notify.Icon(voice.SeverityWarning), lang.T("Command dropped"), err))
			s.renderer.Done()
			continue
		}
		s.renderer.WriteStream(FormatEffect(eff))
		s.renderer.Done()
	}
}

// FormatEffect 一条结果的文本形式：通知一行，编辑器动作另起一行
func FormatEffect(eff voice.Effect) string {
	var b strings.Builder
	if msg := eff.Notification.Message; msg != "" {
		b.WriteString(notify.Icon(eff.Notification.Severity))
		b.WriteString(" ")
		b.WriteString(msg)
		b.WriteString("\n")
	}
	if eff.Action != "" {
		b.WriteString("  → ")
		b.WriteString(eff.Action)
		b.WriteString("\n")
	}
	return b.String()
}

// IsExitCommand 检查输入是否为退出命令，不区分大小写
func (s *InteractiveSession) IsExitCommand(input string) bool {
	input = strings.TrimSpace(strings.ToLower(input))
	for _, cmd := range s.exitCommands {
		if input == strings.TrimSpace(strings.ToLower(cmd)) {
			return true
		}
	}
	return false
}

// Renderer 返回渲染器，用于测试
func (s *InteractiveSession) Renderer() renders.Renderer {
	return s.renderer
}
