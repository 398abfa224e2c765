package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/metrics"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	st, err := store.NewJSONStore(t.TempDir())
	require.NoError(t, err)
	s := New(st, metrics.New())
	t.Cleanup(s.Close)
	return s, st
}

func do(t *testing.T, s *Server, method, path, user, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	out := map[string]any{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func rootNames(t *testing.T, body map[string]any) []string {
	t.Helper()
	fs, ok := body["fileSystem"].(map[string]any)
	require.True(t, ok, "fileSystem missing: %v", body)
	roots, ok := fs["roots"].(map[string]any)
	require.True(t, ok)
	names := make([]string, 0, len(roots))
	for k := range roots {
		names = append(names, k)
	}
	return names
}

func TestGetFilesReturnsDefaultScaffold(t *testing.T) {
	s, _ := newTestServer(t)
	code, body := do(t, s, http.MethodGet, "/api/files", "alice", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []string{"My Project"}, rootNames(t, body))
}

func TestPostAndResetFiles(t *testing.T) {
	s, st := newTestServer(t)
	var buf bytes.Buffer
	fs := project.NewFileSystem(project.NewFolder("Work"))
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"fileSystem": fs}))

	code, body := do(t, s, http.MethodPost, "/api/files", "bob", buf.String())
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "File system updated", body["message"])

	_, body = do(t, s, http.MethodGet, "/api/files", "bob", "")
	assert.Equal(t, []string{"Work"}, rootNames(t, body))

	s.Close()
	saved, err := st.LoadFileSystem(t.Context(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "Work", saved.Roots[0].Name)

	// 其他用户互不影响
	_, body = do(t, s, http.MethodGet, "/api/files", "", "")
	assert.Equal(t, []string{"My Project"}, rootNames(t, body))

	code, body = do(t, s, http.MethodDelete, "/api/files/reset", "bob", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"My Project"}, rootNames(t, body))

	code, _ = do(t, s, http.MethodPost, "/api/files", "bob", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, s, http.MethodPost, "/api/files", "bob", `nope`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSettingsEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	code, body := do(t, s, http.MethodPut, "/api/settings", "carol", `{"theme":"light","fontSize":18,"unknown":1}`)
	require.Equal(t, http.StatusOK, code)
	settings := body["settings"].(map[string]any)
	assert.Equal(t, "light", settings["theme"])
	assert.Equal(t, 18.0, settings["fontSize"])
	assert.NotContains(t, settings, "unknown")

	code, _ = do(t, s, http.MethodPut, "/api/settings", "carol", `{"fontSize":99}`)
	assert.Equal(t, http.StatusBadRequest, code)

	_, body = do(t, s, http.MethodGet, "/api/settings", "carol", "")
	assert.Equal(t, "light", body["settings"].(map[string]any)["theme"])

	code, body = do(t, s, http.MethodPost, "/api/settings/reset", "carol", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, config.ThemeDark, body["settings"].(map[string]any)["theme"])
}

func TestCommandEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	code, body := do(t, s, http.MethodPost, "/api/command", "dave", `{"utterance":"create file app.js"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["outcome"])
	assert.Equal(t, "create_file", body["command"].(map[string]any)["intent"])
	assert.Equal(t, "success", body["notification"].(map[string]any)["severity"])
	assert.NotNil(t, body["fileSystem"])
	assert.Equal(t, "app.js", body["activeTab"].(map[string]any)["name"])

	code, body = do(t, s, http.MethodPost, "/api/command", "dave", `{"utterance":"do a barrel roll"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "unknown", body["outcome"])
	assert.Nil(t, body["fileSystem"])

	code, body = do(t, s, http.MethodPost, "/api/command", "dave", `{"utterance":"delete file app.js","confirm":false}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cancelled", body["outcome"])

	code, body = do(t, s, http.MethodPost, "/api/command", "dave", `{"utterance":"delete file app.js"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["outcome"])

	code, _ = do(t, s, http.MethodPost, "/api/command", "../x", `{"utterance":"save"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestProjectExportImport(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/projects/export", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.String()
	assert.Contains(t, exported, `"projectName": "My Project"`)

	bundle := strings.Replace(exported, `"My Project"`, `"Imported"`, -1)
	code, body := do(t, s, http.MethodPost, "/api/projects/import", "erin", bundle)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Imported", body["projectName"])

	_, body = do(t, s, http.MethodGet, "/api/files", "erin", "")
	assert.Equal(t, []string{"Imported"}, rootNames(t, body))
}

func TestMetricsAndHelp(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/command", "", `{"utterance":"list files"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `speak_commands_total{intent="list_files",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), `speak_sessions_active 1`)

	code, body := do(t, s, http.MethodGet, "/api/commands", "", "")
	require.Equal(t, http.StatusOK, code)
	groups := body["groups"].([]any)
	assert.Equal(t, "Files", groups[0].(map[string]any)["title"])
}

func TestSessionSharedWithHTTP(t *testing.T) {
	s, _ := newTestServer(t)

	sess, in, err := s.Session(t.Context(), "erin")
	require.NoError(t, err)
	again, in2, err := s.Session(t.Context(), "erin")
	require.NoError(t, err)
	assert.Same(t, sess, again)
	assert.Same(t, in, in2)

	eff, err := in.Handle(t.Context(), "create file notes.md")
	require.NoError(t, err)
	require.True(t, eff.OK(), eff.Notification.Message)

	code, body := do(t, s, http.MethodGet, "/api/files", "erin", "")
	require.Equal(t, http.StatusOK, code)
	raw, err := json.Marshal(body["fileSystem"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"notes.md"`)

	_, _, err = s.Session(t.Context(), "a/b")
	assert.ErrorIs(t, err, store.ErrInvalidUser)
}
