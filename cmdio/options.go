package cmdio

import (
	"github.com/sjzsdu/speak/helper/renders"
)

// SessionOption 会话选项函数类型
type SessionOption func(*InteractiveSession)

// WithRenderer 设置渲染器
func WithRenderer(renderer renders.Renderer) SessionOption {
	return func(opts *InteractiveSession) {
		opts.renderer = renderer
	}
}

// WithWelcome 设置欢迎信息
func WithWelcome(welcome string) SessionOption {
	return func(opts *InteractiveSession) {
		opts.welcome = welcome
	}
}

// WithTip 添加单个提示信息
func WithTip(tip string) SessionOption {
	return func(opts *InteractiveSession) {
		opts.tips = append(opts.tips, tip)
	}
}

// WithTips 设置多个提示信息
func WithTips(tips ...string) SessionOption {
	return func(opts *InteractiveSession) {
		opts.tips = append(opts.tips, tips...)
	}
}

// WithPrompt 设置命令提示符
func WithPrompt(prompt string) SessionOption {
	return func(opts *InteractiveSession) {
		opts.prompt = prompt
	}
}

// WithExitCommands 设置退出命令列表
func WithExitCommands(commands ...string) SessionOption {
	return func(opts *InteractiveSession) {
		opts.exitCommands = commands
	}
}

// WithInputFunc 替换输入函数，管道模式与测试使用
func WithInputFunc(fn InputStringFunc) SessionOption {
	return func(opts *InteractiveSession) {
		opts.inputStringFunc = fn
	}
}

// WithEcho 回显每条输入，适合非交互输入
func WithEcho(echo bool) SessionOption {
	return func(opts *InteractiveSession) {
		opts.echo = echo
	}
}
