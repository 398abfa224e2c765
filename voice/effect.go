package voice

import (
	"errors"

	"github.com/sjzsdu/speak/project"
)

var (
	ErrUnknownCommand        = errors.New("unknown command")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrNoSelection           = errors.New("nothing selected")
	ErrMissingParam          = errors.New("missing parameter")
	ErrCancelled             = errors.New("cancelled by user")
	ErrBusy                  = errors.New("interpreter busy")
)

// Notification 展示给用户的一条反馈
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Effect 一次分派的结果
type Effect struct {
	Command      Command             `json:"command"`
	Notification Notification        `json:"notification"`
	Snapshot     *project.FileSystem `json:"-"`                // 提交的新快照，没有修改时为 nil
	Action       string              `json:"action,omitempty"` // 交给编辑器的动作
	Err          error               `json:"-"`
}

// OK 没有错误
func (e Effect) OK() bool { return e.Err == nil }

// Outcome 用于日志与指标的结果分类
func (e Effect) Outcome() string {
	switch {
	case e.Err == nil:
		return "ok"
	case errors.Is(e.Err, ErrUnknownCommand):
		return "unknown"
	case errors.Is(e.Err, ErrCapabilityUnavailable):
		return "unavailable"
	case errors.Is(e.Err, ErrNoSelection), errors.Is(e.Err, ErrMissingParam):
		return "incomplete"
	case errors.Is(e.Err, ErrCancelled):
		return "cancelled"
	default:
		return "failed"
	}
}

func success(msg string) Effect {
	return Effect{Notification: Notification{Message: msg, Severity: SeveritySuccess}}
}

func info(msg string, err error) Effect {
	return Effect{Notification: Notification{Message: msg, Severity: SeverityInfo}, Err: err}
}

func warning(msg string, err error) Effect {
	return Effect{Notification: Notification{Message: msg, Severity: SeverityWarning}, Err: err}
}

func failure(msg string, err error) Effect {
	return Effect{Notification: Notification{Message: msg, Severity: SeverityError}, Err: err}
}
