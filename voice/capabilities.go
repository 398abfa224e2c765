package voice

import (
	"context"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/project"
)

// Severity 通知级别
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Files 当前快照的读取与替换。Commit 立即替换内存中的快照，持久化由实现方异步完成。
type Files interface {
	Snapshot() *project.FileSystem
	Commit(fs *project.FileSystem)
}

// ClipboardStore 文件剪贴板
type ClipboardStore interface {
	Clipboard() *project.Clipboard
	SetClipboard(c *project.Clipboard)
}

// Selection 资源管理器中当前选中的节点
type Selection interface {
	Selected() (project.Path, bool)
	Select(p project.Path)
	ClearSelection()
}

// Tab 打开的编辑器标签
type Tab struct {
	ID       string       `json:"id"`
	Path     project.Path `json:"path"`
	Name     string       `json:"name"`
	Language string       `json:"language"`
	Content  string       `json:"content"`
	Modified bool         `json:"modified"`
}

// Tabs 标签页状态
type Tabs interface {
	// Open 打开文件，同一路径只会有一个标签
	Open(p project.Path, n *project.Node) Tab
	Active() (Tab, bool)
	Close(id string) bool
	CloseAll() int
	Next() (Tab, bool)
	Prev() (Tab, bool)
	First() (Tab, bool)
	Last() (Tab, bool)
	MarkSaved(id string)
	// Retarget 路径被重命名或移动后更新标签
	Retarget(from, to project.Path)
	// CloseUnder 关闭 p 及其子路径下的所有标签
	CloseUnder(p project.Path) int
}

// Settings 编辑器设置
type Settings interface {
	Settings() config.Settings
	UpdateSettings(s config.Settings)
	ResetSettings() config.Settings
}

// Editor 嵌入的文本编辑组件，按名称执行动作
type Editor interface {
	Trigger(action string) error
	GoToLine(line int) error
	LineCount() int
	InsertText(text string) error
}

// Shell 宿主界面提供的能力
type Shell interface {
	// Confirm 同步询问用户，等待期间新的指令会被丢弃
	Confirm(ctx context.Context, message string) bool
	OpenHelp() error
	OpenSettings() error
	OpenImport() error
	OpenExport() error
	Logout() error
	Download(p project.Path, n *project.Node) error
	ToggleSidebar() (visible bool)
	StopListening()
}

// Dictation 听写模式开关
type Dictation interface {
	Typing() bool
	SetTyping(on bool)
}

// Notifier 通知出口
type Notifier interface {
	Notify(message string, severity Severity)
}

// NotifierFunc 函数适配器
type NotifierFunc func(message string, severity Severity)

func (f NotifierFunc) Notify(message string, severity Severity) { f(message, severity) }

// Capabilities 分派时注入的能力集合。Editor、Shell、Dictation、Notifier 可以为 nil。
type Capabilities struct {
	Files     Files
	Clipboard ClipboardStore
	Selection Selection
	Tabs      Tabs
	Settings  Settings
	Editor    Editor
	Shell     Shell
	Dictation Dictation
	Notifier  Notifier
}
