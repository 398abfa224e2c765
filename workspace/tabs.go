package workspace

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/voice"
)

// ErrNoActiveTab 没有打开的标签，即没有可用的编辑器
var ErrNoActiveTab = fmt.Errorf("no active tab: %w", voice.ErrCapabilityUnavailable)

func (s *Session) indexOf(id string) int {
	for i, t := range s.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// activate 切换活动标签并把内容载入缓冲区，调用方持有锁
func (s *Session) activate(i int) voice.Tab {
	if i < 0 || i >= len(s.tabs) {
		s.active = ""
		s.buffer.Load("", project.DefaultLanguage)
		return voice.Tab{}
	}
	t := s.tabs[i]
	if s.active != t.ID {
		s.active = t.ID
		s.buffer.Load(t.Content, t.Language)
	}
	return t
}

// Open 打开文件，已打开时只切换过去
func (s *Session) Open(p project.Path, n *project.Node) voice.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tabs {
		if t.Path.Equal(p) {
			return s.activate(i)
		}
	}
	s.tabs = append(s.tabs, voice.Tab{
		ID:       uuid.New().String(),
		Path:     append(project.Path(nil), p...),
		Name:     n.Name,
		Language: n.Language,
		Content:  n.Content,
	})
	return s.activate(len(s.tabs) - 1)
}

// Active 当前活动标签
func (s *Session) Active() (voice.Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(s.active)
	if i < 0 {
		return voice.Tab{}, false
	}
	return s.tabs[i], true
}

// Tabs 全部标签的副本
func (s *Session) Tabs() []voice.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]voice.Tab(nil), s.tabs...)
}

// Close 关闭标签。关闭活动标签时激活右侧相邻的标签，没有则激活左侧
func (s *Session) Close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
	if s.active == id {
		s.active = ""
		if i >= len(s.tabs) {
			i = len(s.tabs) - 1
		}
		s.activate(i)
	}
	return true
}

// CloseAll 关闭全部标签，返回关闭数量
func (s *Session) CloseAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.tabs)
	s.tabs = nil
	s.activate(-1)
	return n
}

func (s *Session) step(delta int) (voice.Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tabs) == 0 {
		return voice.Tab{}, false
	}
	i := s.indexOf(s.active)
	if i < 0 {
		i = 0
	} else {
		i = (i + delta + len(s.tabs)) % len(s.tabs)
	}
	return s.activate(i), true
}

func (s *Session) Next() (voice.Tab, bool) { return s.step(1) }

func (s *Session) Prev() (voice.Tab, bool) { return s.step(-1) }

func (s *Session) jump(last bool) (voice.Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tabs) == 0 {
		return voice.Tab{}, false
	}
	if last {
		return s.activate(len(s.tabs) - 1), true
	}
	return s.activate(0), true
}

func (s *Session) First() (voice.Tab, bool) { return s.jump(false) }

func (s *Session) Last() (voice.Tab, bool) { return s.jump(true) }

// MarkSaved 清除未保存标记
func (s *Session) MarkSaved(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.tabs[i].Modified = false
	}
}

// Retarget 把 from 及其子路径下的标签改到 to 下
func (s *Session) Retarget(from, to project.Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tabs {
		t := &s.tabs[i]
		if !t.Path.HasPrefix(from) {
			continue
		}
		p := append(append(project.Path(nil), to...), t.Path[len(from):]...)
		t.Path = p
		t.Name = p.Base()
		t.Language = project.DetectLanguage(t.Name)
		if t.ID == s.active {
			s.buffer.SetLanguage(t.Language)
		}
	}
}

// CloseUnder 关闭 p 及其子路径下的标签
func (s *Session) CloseUnder(p project.Path) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tabs[:0]
	closed, activeClosed := 0, false
	for _, t := range s.tabs {
		if t.Path.HasPrefix(p) {
			closed++
			activeClosed = activeClosed || t.ID == s.active
			continue
		}
		kept = append(kept, t)
	}
	s.tabs = kept
	if activeClosed {
		s.active = ""
		s.activate(len(s.tabs) - 1)
	}
	return closed
}

// bufferChanged 编辑器内容变化后同步到活动标签
func (s *Session) bufferChanged(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(s.active); i >= 0 && s.tabs[i].Content != content {
		s.tabs[i].Content = content
		s.tabs[i].Modified = true
	}
}
