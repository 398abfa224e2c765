package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sjzsdu/speak/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverCountsOutcomes(t *testing.T) {
	m := New()
	observe := m.Observer()

	observe("save", voice.Effect{
		Command:      voice.Command{Intent: voice.IntentSaveFile},
		Notification: voice.Notification{Severity: voice.SeveritySuccess},
	})
	observe("save", voice.Effect{
		Command:      voice.Command{Intent: voice.IntentSaveFile},
		Notification: voice.Notification{Severity: voice.SeveritySuccess},
	})
	observe("blah", voice.Effect{
		Command:      voice.Command{Intent: voice.IntentUnknown},
		Notification: voice.Notification{Severity: voice.SeverityWarning},
		Err:          voice.ErrUnknownCommand,
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues(string(voice.IntentSaveFile), "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues(string(voice.IntentUnknown), "unknown")))

	m.Dropped()
	m.SetSessions(3)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dropped))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessions))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/items/{id}", "418")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "speak_http_requests_total"))
}
