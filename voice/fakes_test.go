package voice

import (
	"context"
	"errors"
	"sync"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/project"
)

type memFiles struct {
	fs      *project.FileSystem
	commits int
}

func (m *memFiles) Snapshot() *project.FileSystem { return m.fs }
func (m *memFiles) Commit(fs *project.FileSystem) { m.fs = fs; m.commits++ }

type memClipboard struct{ c *project.Clipboard }

func (m *memClipboard) Clipboard() *project.Clipboard     { return m.c }
func (m *memClipboard) SetClipboard(c *project.Clipboard) { m.c = c }

type memSelection struct {
	p  project.Path
	ok bool
}

func (m *memSelection) Selected() (project.Path, bool) { return m.p, m.ok }
func (m *memSelection) Select(p project.Path)          { m.p, m.ok = p, true }
func (m *memSelection) ClearSelection()                { m.p, m.ok = nil, false }

type memTabs struct {
	tabs   []Tab
	active int
	saved  []string
}

func (m *memTabs) Open(p project.Path, n *project.Node) Tab {
	for i, t := range m.tabs {
		if t.Path.Equal(p) {
			m.active = i
			return t
		}
	}
	t := Tab{ID: p.String(), Path: p, Name: n.Name, Language: n.Language, Content: n.Content}
	m.tabs = append(m.tabs, t)
	m.active = len(m.tabs) - 1
	return t
}

func (m *memTabs) Active() (Tab, bool) {
	if len(m.tabs) == 0 {
		return Tab{}, false
	}
	return m.tabs[m.active], true
}

func (m *memTabs) Close(id string) bool {
	for i, t := range m.tabs {
		if t.ID == id {
			m.tabs = append(m.tabs[:i], m.tabs[i+1:]...)
			m.active = max(0, min(m.active, len(m.tabs)-1))
			return true
		}
	}
	return false
}

func (m *memTabs) CloseAll() int {
	n := len(m.tabs)
	m.tabs, m.active = nil, 0
	return n
}

func (m *memTabs) move(i int) (Tab, bool) {
	if len(m.tabs) == 0 {
		return Tab{}, false
	}
	m.active = (i + len(m.tabs)) % len(m.tabs)
	return m.tabs[m.active], true
}

func (m *memTabs) Next() (Tab, bool)  { return m.move(m.active + 1) }
func (m *memTabs) Prev() (Tab, bool)  { return m.move(m.active - 1) }
func (m *memTabs) First() (Tab, bool) { return m.move(0) }
func (m *memTabs) Last() (Tab, bool)  { return m.move(len(m.tabs) - 1) }

func (m *memTabs) MarkSaved(id string) {
	m.saved = append(m.saved, id)
	for i := range m.tabs {
		if m.tabs[i].ID == id {
			m.tabs[i].Modified = false
		}
	}
}

func (m *memTabs) Retarget(from, to project.Path) {
	for i, t := range m.tabs {
		if t.Path.HasPrefix(from) {
			m.tabs[i].Path = append(append(project.Path{}, to...), t.Path[len(from):]...)
			m.tabs[i].Name = m.tabs[i].Path.Base()
		}
	}
}

func (m *memTabs) CloseUnder(p project.Path) int {
	kept := m.tabs[:0]
	for _, t := range m.tabs {
		if !t.Path.HasPrefix(p) {
			kept = append(kept, t)
		}
	}
	n := len(m.tabs) - len(kept)
	m.tabs = kept
	m.active = 0
	return n
}

type memSettings struct{ s config.Settings }

func (m *memSettings) Settings() config.Settings        { return m.s }
func (m *memSettings) UpdateSettings(s config.Settings) { m.s = s }
func (m *memSettings) ResetSettings() config.Settings {
	m.s = config.DefaultSettings()
	return m.s
}

type fakeEditor struct {
	actions  []string
	line     int
	lines    int
	inserted []string
	query    string
	replace  string
	err      error
}

func (e *fakeEditor) Trigger(action string) error {
	if e.err != nil {
		return e.err
	}
	e.actions = append(e.actions, action)
	return nil
}

func (e *fakeEditor) GoToLine(line int) error {
	if e.err != nil {
		return e.err
	}
	if line < 1 || line > e.lines {
		return errors.New("line out of range")
	}
	e.line = line
	return nil
}

func (e *fakeEditor) LineCount() int { return e.lines }

func (e *fakeEditor) InsertText(text string) error {
	e.inserted = append(e.inserted, text)
	return nil
}

func (e *fakeEditor) SetSearch(query, replacement string) {
	e.query, e.replace = query, replacement
}

type fakeShell struct {
	mu        sync.Mutex
	answer    bool
	asked     []string
	gate      chan struct{} // 非 nil 时 Confirm 阻塞到关闭
	sidebar   bool
	opened    []string
	downloads []project.Path
	stopped   bool
}

func (s *fakeShell) Confirm(ctx context.Context, message string) bool {
	s.mu.Lock()
	s.asked = append(s.asked, message)
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return false
		}
	}
	return s.answer
}

func (s *fakeShell) open(what string) error {
	s.opened = append(s.opened, what)
	return nil
}

func (s *fakeShell) OpenHelp() error     { return s.open("help") }
func (s *fakeShell) OpenSettings() error { return s.open("settings") }
func (s *fakeShell) OpenImport() error   { return s.open("import") }
func (s *fakeShell) OpenExport() error   { return s.open("export") }
func (s *fakeShell) Logout() error       { return s.open("logout") }

func (s *fakeShell) Download(p project.Path, _ *project.Node) error {
	s.downloads = append(s.downloads, p)
	return nil
}

func (s *fakeShell) ToggleSidebar() bool {
	s.sidebar = !s.sidebar
	return s.sidebar
}

func (s *fakeShell) StopListening() { s.stopped = true }

type memDictation struct{ on bool }

func (d *memDictation) Typing() bool      { return d.on }
func (d *memDictation) SetTyping(on bool) { d.on = on }

type recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Notification{Message: message, Severity: severity})
}

func (r *recorder) last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Notification{}
	}
	return r.notes[len(r.notes)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

type fixture struct {
	files     *memFiles
	clipboard *memClipboard
	selection *memSelection
	tabs      *memTabs
	settings  *memSettings
	editor    *fakeEditor
	shell     *fakeShell
	dictation *memDictation
	notes     *recorder
}

// newFixture Project/{src/{index.js, lib/}, README.md}
func newFixture() *fixture {
	root := project.NewFolder("Project")
	src := project.NewFolder("src")
	src.AddChild(project.NewFile("index.js", "console.log(1)"))
	src.AddChild(project.NewFolder("lib"))
	root.AddChild(src)
	root.AddChild(project.NewFile("README.md", "# readme"))

	return &fixture{
		files:     &memFiles{fs: project.NewFileSystem(root)},
		clipboard: &memClipboard{},
		selection: &memSelection{},
		tabs:      &memTabs{},
		settings:  &memSettings{s: config.DefaultSettings()},
		editor:    &fakeEditor{lines: 100},
		shell:     &fakeShell{answer: true},
		dictation: &memDictation{},
		notes:     &recorder{},
	}
}

func (f *fixture) caps() Capabilities {
	return Capabilities{
		Files:     f.files,
		Clipboard: f.clipboard,
		Selection: f.selection,
		Tabs:      f.tabs,
		Settings:  f.settings,
		Editor:    f.editor,
		Shell:     f.shell,
		Dictation: f.dictation,
		Notifier:  f.notes,
	}
}

func (f *fixture) say(utterance string) Effect {
	return Dispatch(context.Background(), Classify(utterance), f.caps())
}
