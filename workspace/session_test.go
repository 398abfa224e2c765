package workspace

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/store"
	"github.com/sjzsdu/speak/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*Session, store.Store) {
	t.Helper()
	st, err := store.NewJSONStore(t.TempDir())
	require.NoError(t, err)
	s, err := Open(context.Background(), st, "tester")
	require.NoError(t, err)
	return s, st
}

func openFile(t *testing.T, s *Session, path string) voice.Tab {
	t.Helper()
	p := project.ParsePath(path)
	n, err := project.Resolve(s.Snapshot(), p)
	require.NoError(t, err)
	return s.Open(p, n)
}

func TestOpenDefaultsWhenStoreEmpty(t *testing.T) {
	s, _ := newSession(t)
	assert.Equal(t, "My Project", s.Snapshot().Roots[0].Name)
	assert.Equal(t, config.DefaultSettings(), s.Settings())
	assert.True(t, s.SidebarVisible())
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestOneTabPerPath(t *testing.T) {
	s, _ := newSession(t)
	a := openFile(t, s, "My Project/README.md")
	b := openFile(t, s, "My Project/src/index.js")
	again := openFile(t, s, "My Project/README.md")

	assert.Equal(t, a.ID, again.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, s.Tabs(), 2)
	active, _ := s.Active()
	assert.Equal(t, a.ID, active.ID)
}

func TestCloseActivatesNeighbour(t *testing.T) {
	s, _ := newSession(t)
	a := openFile(t, s, "My Project/README.md")
	b := openFile(t, s, "My Project/src/index.js")
	c := openFile(t, s, "My Project/src/components/Editor.jsx")

	s.Open(b.Path, nil)
	require.True(t, s.Close(b.ID))
	active, _ := s.Active()
	assert.Equal(t, c.ID, active.ID)

	require.True(t, s.Close(c.ID))
	active, _ = s.Active()
	assert.Equal(t, a.ID, active.ID)

	require.True(t, s.Close(a.ID))
	_, ok := s.Active()
	assert.False(t, ok)
	assert.False(t, s.Close("missing"))
}

func TestTabCycling(t *testing.T) {
	s, _ := newSession(t)
	a := openFile(t, s, "My Project/README.md")
	b := openFile(t, s, "My Project/src/index.js")

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, a.ID, next.ID)
	prev, _ := s.Prev()
	assert.Equal(t, b.ID, prev.ID)
	first, _ := s.First()
	assert.Equal(t, a.ID, first.ID)
	last, _ := s.Last()
	assert.Equal(t, b.ID, last.ID)

	assert.Equal(t, 2, s.CloseAll())
	_, ok = s.Next()
	assert.False(t, ok)
}

func TestEditorChangesMarkTabModified(t *testing.T) {
	s, _ := newSession(t)
	caps := s.Capabilities(nil, nil)

	assert.ErrorIs(t, caps.Editor.InsertText("x"), ErrNoActiveTab)

	tab := openFile(t, s, "My Project/README.md")
	require.NoError(t, caps.Editor.GoToLine(1))
	require.NoError(t, caps.Editor.InsertText("hello "))

	active, _ := s.Active()
	assert.True(t, active.Modified)
	assert.Equal(t, "hello # My Project", active.Content[:len("hello # My Project")])

	saved, err := s.SaveActive()
	require.NoError(t, err)
	assert.Equal(t, tab.ID, saved.ID)
	assert.False(t, saved.Modified)
	n, err := project.Resolve(s.Snapshot(), tab.Path)
	require.NoError(t, err)
	assert.Equal(t, active.Content, n.Content)
}

func TestSwitchingTabsLoadsBuffer(t *testing.T) {
	s, _ := newSession(t)
	openFile(t, s, "My Project/README.md")
	require.NoError(t, s.buffer.InsertText("draft "))
	openFile(t, s, "My Project/src/index.js")
	assert.Contains(t, s.buffer.Text(), "function greet")

	back, _ := s.First()
	assert.True(t, back.Modified)
	assert.Contains(t, s.buffer.Text(), "draft ")
}

func TestRetargetAndCloseUnder(t *testing.T) {
	s, _ := newSession(t)
	openFile(t, s, "My Project/src/index.js")
	openFile(t, s, "My Project/README.md")

	s.Retarget(project.Path{"My Project", "src"}, project.Path{"My Project", "lib"})
	tabs := s.Tabs()
	assert.Equal(t, "My Project/lib/index.js", tabs[0].Path.String())

	s.Retarget(project.Path{"My Project", "README.md"}, project.Path{"My Project", "notes.py"})
	tabs = s.Tabs()
	assert.Equal(t, "notes.py", tabs[1].Name)
	assert.Equal(t, "python", tabs[1].Language)

	assert.Equal(t, 1, s.CloseUnder(project.Path{"My Project", "lib"}))
	assert.Len(t, s.Tabs(), 1)
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "notes.py", active.Name)
}

func TestCommitAndSettingsPersist(t *testing.T) {
	s, st := newSession(t)
	next, _, err := project.CreateNode(s.Snapshot(), project.Path{"My Project"}, "app.go", project.TypeFile, "")
	require.NoError(t, err)
	s.Commit(next)

	settings := s.Settings()
	settings.Theme = config.ThemeLight
	s.UpdateSettings(settings)
	s.Flush()

	reloaded, err := Open(context.Background(), st, "tester")
	require.NoError(t, err)
	_, err = project.Resolve(reloaded.Snapshot(), project.Path{"My Project", "app.go"})
	assert.NoError(t, err)
	assert.Equal(t, config.ThemeLight, reloaded.Settings().Theme)

	assert.Equal(t, config.DefaultSettings(), s.ResetSettings())
	s.Flush()
}

func TestReset(t *testing.T) {
	s, _ := newSession(t)
	openFile(t, s, "My Project/README.md")
	s.Select(project.Path{"My Project"})
	next, err := project.DeleteNode(s.Snapshot(), project.Path{"My Project", "src"})
	require.NoError(t, err)
	s.Commit(next)
	s.Flush()

	fs, err := s.Reset(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, fs.Roots[0].Child("src"))
	assert.Empty(t, s.Tabs())
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestInterpreterOverSession(t *testing.T) {
	s, _ := newSession(t)
	var out bytes.Buffer
	host := &Host{Session: s, Out: &out, Dir: t.TempDir()}
	var notes []string
	in := voice.NewInterpreter(s.Capabilities(host, voice.NotifierFunc(func(m string, _ voice.Severity) {
		notes = append(notes, m)
	})))
	ctx := context.Background()

	eff, err := in.Handle(ctx, "create file app.js")
	require.NoError(t, err)
	assert.Equal(t, "ok", eff.Outcome())

	_, err = in.Handle(ctx, "open file index.js")
	require.NoError(t, err)
	_, err = in.Handle(ctx, "go to line 4")
	require.NoError(t, err)
	_, err = in.Handle(ctx, "start typing")
	require.NoError(t, err)
	_, err = in.Handle(ctx, "// note")
	require.NoError(t, err)
	_, err = in.Handle(ctx, "stop typing")
	require.NoError(t, err)
	eff, err = in.Handle(ctx, "save")
	require.NoError(t, err)
	assert.Equal(t, "ok", eff.Outcome())

	n, err := project.Resolve(s.Snapshot(), project.Path{"My Project", "src", "index.js"})
	require.NoError(t, err)
	assert.Contains(t, n.Content, "// note")

	eff, err = in.Handle(ctx, "toggle sidebar")
	require.NoError(t, err)
	assert.False(t, s.SidebarVisible())

	eff, err = in.Handle(ctx, "download file readme.md")
	require.NoError(t, err)
	assert.Equal(t, "ok", eff.Outcome())
	assert.FileExists(t, filepath.Join(host.Dir, "README.md"))

	assert.Len(t, notes, 9)
	s.Flush()
}

func TestEditorIntentsWithoutOpenTab(t *testing.T) {
	s, _ := newSession(t)
	caps := s.Capabilities(nil, nil)

	for _, u := range []string{"go to line 42", "undo", "format document", "select all", "scroll to bottom"} {
		t.Run(u, func(t *testing.T) {
			eff := voice.Dispatch(context.Background(), voice.Classify(u), caps)
			assert.Equal(t, voice.SeverityWarning, eff.Notification.Severity)
			assert.Equal(t, "Editor is not available", eff.Notification.Message)
			assert.ErrorIs(t, eff.Err, voice.ErrCapabilityUnavailable)
			assert.Equal(t, "unavailable", eff.Outcome())
		})
	}
}

func TestCutSurvivesRenameOfParent(t *testing.T) {
	s, _ := newSession(t)
	defer s.Flush()
	caps := s.Capabilities(nil, nil)
	say := func(u string) voice.Effect {
		t.Helper()
		eff := voice.Dispatch(context.Background(), voice.Classify(u), caps)
		require.NoError(t, eff.Err, u)
		return eff
	}

	say("cut file editor.jsx")
	say("rename folder components to widgets")
	clip := s.Clipboard()
	require.False(t, clip.Empty())
	assert.Equal(t, "My Project/src/widgets/Editor.jsx", clip.Path.String())

	s.Select(project.Path{"My Project"})
	say("paste")

	_, err := project.Resolve(s.Snapshot(), project.ParsePath("My Project/src/widgets/Editor.jsx"))
	assert.ErrorIs(t, err, project.ErrNotFound)
	_, err = project.Resolve(s.Snapshot(), project.ParsePath("My Project/Editor.jsx"))
	assert.NoError(t, err)
	assert.True(t, s.Clipboard().Empty())
}

func TestDeleteClearsClipboardUnderIt(t *testing.T) {
	s, _ := newSession(t)
	defer s.Flush()
	caps := s.Capabilities(nil, nil)

	eff := voice.Dispatch(context.Background(), voice.Classify("copy file index.js"), caps)
	require.NoError(t, eff.Err)
	require.False(t, s.Clipboard().Empty())

	eff = voice.Dispatch(context.Background(), voice.Classify("delete folder src"), caps)
	require.NoError(t, eff.Err)
	assert.True(t, s.Clipboard().Empty())
}

func TestRetargetActiveTabUpdatesBufferLanguage(t *testing.T) {
	s, _ := newSession(t)
	openFile(t, s, "My Project/README.md")
	require.NoError(t, s.buffer.InsertText("draft "))
	assert.Equal(t, "markdown", s.buffer.Language())

	s.Retarget(project.ParsePath("My Project/README.md"), project.ParsePath("My Project/notes.py"))
	assert.Equal(t, "python", s.buffer.Language())
	assert.Contains(t, s.buffer.Text(), "draft ")
}
