package voice

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/sjzsdu/speak/helper/logger"
)

// Observer 每次分派完成后回调，用于指标与转写记录
type Observer func(utterance string, eff Effect)

// Option 解释器选项
type Option func(*Interpreter)

// WithObserver 注册分派观察者
func WithObserver(o Observer) Option {
	return func(i *Interpreter) {
		i.observers = append(i.observers, o)
	}
}

// Interpreter 语音指令入口。同一时刻只处理一条指令，
// 忙碌期间（包括等待用户确认时）到达的指令直接丢弃。
type Interpreter struct {
	caps      Capabilities
	busy      atomic.Bool
	observers []Observer
}

// NewInterpreter 创建解释器
func NewInterpreter(caps Capabilities, opts ...Option) *Interpreter {
	i := &Interpreter{caps: caps}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Busy 是否正在处理指令
func (i *Interpreter) Busy() bool {
	return i.busy.Load()
}

// Capabilities 返回注入的能力集合
func (i *Interpreter) Capabilities() Capabilities {
	return i.caps
}

// Handle 分类并执行一句话。忙碌时返回 ErrBusy，不产生任何效果；
// 指令本身的失败记录在 Effect.Err 中。
func (i *Interpreter) Handle(ctx context.Context, utterance string) (Effect, error) {
	if err := ctx.Err(); err != nil {
		return Effect{}, err
	}
	if !i.busy.CompareAndSwap(false, true) {
		logger.Debug("command dropped while busy", logger.Utterance(utterance))
		return Effect{}, ErrBusy
	}
	defer i.busy.Store(false)

	cmd := i.classify(utterance)
	eff := Dispatch(ctx, cmd, i.caps)
	for _, o := range i.observers {
		o(utterance, eff)
	}
	return eff, nil
}

// classify 听写模式下除了关闭听写与停止监听，其余内容都作为文本输入
func (i *Interpreter) classify(utterance string) Command {
	cmd := Classify(utterance)
	if i.caps.Dictation == nil || !i.caps.Dictation.Typing() {
		return cmd
	}
	switch cmd.Intent {
	case IntentTypingOff, IntentStopListening:
		return cmd
	}
	return Command{Intent: IntentDictate, Raw: strings.TrimSpace(utterance)}
}
