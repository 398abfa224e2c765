package workspace

import (
	"github.com/sjzsdu/speak/voice"
)

// activeEditor 把编辑器动作转发给活动标签的缓冲区，没有活动标签时报错
type activeEditor struct {
	s *Session
}

func (e *activeEditor) ready() error {
	if _, ok := e.s.Active(); !ok {
		return ErrNoActiveTab
	}
	return nil
}

func (e *activeEditor) Trigger(action string) error {
	if err := e.ready(); err != nil {
		return err
	}
	return e.s.buffer.Trigger(action)
}

func (e *activeEditor) GoToLine(line int) error {
	if err := e.ready(); err != nil {
		return err
	}
	return e.s.buffer.GoToLine(line)
}

func (e *activeEditor) LineCount() int {
	return e.s.buffer.LineCount()
}

func (e *activeEditor) InsertText(text string) error {
	if err := e.ready(); err != nil {
		return err
	}
	return e.s.buffer.InsertText(text)
}

func (e *activeEditor) SetSearch(query, replacement string) {
	e.s.buffer.SetSearch(query, replacement)
}

var (
	_ voice.Editor   = (*activeEditor)(nil)
	_ voice.Searcher = (*activeEditor)(nil)
)
