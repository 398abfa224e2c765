// Package workspace 宿主会话：持有文件快照、标签页、选中项、剪贴板与设置，
// 实现语音分派所需的各项能力
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/project/editor"
	"github.com/sjzsdu/speak/store"
	"github.com/sjzsdu/speak/voice"
	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// Session 单个用户的编辑会话
type Session struct {
	mu       sync.RWMutex
	user     string
	store    store.Store
	fs       *project.FileSystem
	clip     *project.Clipboard
	selected project.Path
	settings config.Settings
	typing   bool
	sidebar  bool

	tabs   []voice.Tab
	active string
	buffer *editor.Buffer

	pending sync.WaitGroup
}

// New 创建内存会话，st 为 nil 时不持久化
func New(user string, fs *project.FileSystem, settings config.Settings, st store.Store) *Session {
	if fs == nil {
		fs = project.DefaultFileSystem()
	}
	s := &Session{
		user:     user,
		store:    st,
		fs:       fs,
		settings: settings,
		sidebar:  true,
		buffer:   editor.NewBuffer("", project.DefaultLanguage, settings.TabSize),
	}
	s.buffer.OnChange(s.bufferChanged)
	return s
}

// Open 从存储加载用户的快照与设置
func Open(ctx context.Context, st store.Store, user string) (*Session, error) {
	fs, err := st.LoadFileSystem(ctx, user)
	if err != nil {
		return nil, err
	}
	settings, err := st.LoadSettings(ctx, user)
	if err != nil {
		return nil, err
	}
	return New(user, fs, settings, st), nil
}

// User 会话所属用户
func (s *Session) User() string { return s.user }

// Capabilities 组装分派能力，shell 与 notifier 由宿主提供
func (s *Session) Capabilities(shell voice.Shell, notifier voice.Notifier) voice.Capabilities {
	caps := voice.Capabilities{
		Files:     s,
		Clipboard: s,
		Selection: s,
		Tabs:      s,
		Settings:  s,
		Editor:    &activeEditor{s: s},
		Dictation: s,
	}
	if shell != nil {
		caps.Shell = shell
	}
	if notifier != nil {
		caps.Notifier = notifier
	}
	return caps
}

// Snapshot 当前快照
func (s *Session) Snapshot() *project.FileSystem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fs
}

// Commit 替换快照并在后台保存
func (s *Session) Commit(fs *project.FileSystem) {
	s.mu.Lock()
	s.fs = fs
	s.mu.Unlock()
	s.persist("save file system", func(ctx context.Context) error {
		return s.store.SaveFileSystem(ctx, s.user, fs)
	})
}

// Reset 恢复默认项目结构，关闭全部标签并清空选中项与剪贴板
func (s *Session) Reset(ctx context.Context) (*project.FileSystem, error) {
	fs := project.DefaultFileSystem()
	if s.store != nil {
		var err error
		if fs, err = s.store.ResetFileSystem(ctx, s.user); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	s.fs = fs
	s.clip = nil
	s.selected = nil
	s.tabs = nil
	s.active = ""
	s.mu.Unlock()
	s.buffer.Load("", project.DefaultLanguage)
	return fs, nil
}

// persist 在后台写入存储，失败只记录日志不重试
func (s *Session) persist(what string, fn func(ctx context.Context) error) {
	if s.store == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Warn("persist failed", zap.String("op", what), logger.User(s.user), logger.Err(err))
		}
	}()
}

// Flush 等待后台保存完成
func (s *Session) Flush() {
	s.pending.Wait()
}

// Clipboard 文件剪贴板
func (s *Session) Clipboard() *project.Clipboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clip
}

func (s *Session) SetClipboard(c *project.Clipboard) {
	s.mu.Lock()
	s.clip = c
	s.mu.Unlock()
}

// Selected 当前选中项
func (s *Session) Selected() (project.Path, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected != nil
}

func (s *Session) Select(p project.Path) {
	s.mu.Lock()
	s.selected = p
	s.mu.Unlock()
}

func (s *Session) ClearSelection() {
	s.Select(nil)
}

// Settings 当前设置
func (s *Session) Settings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings 替换设置并在后台保存
func (s *Session) UpdateSettings(settings config.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	s.buffer.SetTabSize(settings.TabSize)
	s.persist("save settings", func(ctx context.Context) error {
		return s.store.SaveSettings(ctx, s.user, settings)
	})
}

// ResetSettings 恢复默认设置
func (s *Session) ResetSettings() config.Settings {
	d := config.DefaultSettings()
	s.UpdateSettings(d)
	return d
}

// Typing 是否处于听写模式
func (s *Session) Typing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typing
}

func (s *Session) SetTyping(on bool) {
	s.mu.Lock()
	s.typing = on
	s.mu.Unlock()
}

// ToggleSidebar 切换侧边栏，返回切换后是否可见
func (s *Session) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebar = !s.sidebar
	return s.sidebar
}

// SidebarVisible 侧边栏是否可见
func (s *Session) SidebarVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebar
}

// SaveActive 把活动标签的内容写回快照
func (s *Session) SaveActive() (voice.Tab, error) {
	tab, ok := s.Active()
	if !ok {
		return voice.Tab{}, ErrNoActiveTab
	}
	fs := s.Snapshot()
	next, err := project.UpdateContent(fs, tab.Path, tab.Content)
	if err != nil {
		return tab, err
	}
	if next != fs {
		s.Commit(next)
	}
	s.MarkSaved(tab.ID)
	tab.Modified = false
	return tab, nil
}

var (
	_ voice.Files          = (*Session)(nil)
	_ voice.ClipboardStore = (*Session)(nil)
	_ voice.Selection      = (*Session)(nil)
	_ voice.Tabs           = (*Session)(nil)
	_ voice.Settings       = (*Session)(nil)
	_ voice.Dictation      = (*Session)(nil)
)
