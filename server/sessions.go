package server

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/sjzsdu/speak/metrics"
	"github.com/sjzsdu/speak/share"
	"github.com/sjzsdu/speak/store"
	"github.com/sjzsdu/speak/voice"
	"github.com/sjzsdu/speak/workspace"
)

// userSession 每个用户一个会话与解释器
type userSession struct {
	session     *workspace.Session
	interpreter *voice.Interpreter
	shell       *apiShell
}

type registry struct {
	store   store.Store
	metrics *metrics.Metrics

	mu    sync.Mutex
	users map[string]*userSession
}

func newRegistry(st store.Store, m *metrics.Metrics) *registry {
	return &registry{store: st, metrics: m, users: make(map[string]*userSession)}
}

func userOf(r *http.Request) string {
	if u := strings.TrimSpace(r.Header.Get(UserHeader)); u != "" {
		return u
	}
	return share.DEFAULT_USER
}

// get 首次访问时从存储加载
func (g *registry) get(ctx context.Context, user string) (*userSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if us, ok := g.users[user]; ok {
		return us, nil
	}

	sess, err := workspace.Open(ctx, g.store, user)
	if err != nil {
		return nil, err
	}
	shell := &apiShell{session: sess}
	var opts []voice.Option
	if g.metrics != nil {
		opts = append(opts, voice.WithObserver(g.metrics.Observer()))
	}
	us := &userSession{
		session:     sess,
		interpreter: voice.NewInterpreter(sess.Capabilities(shell, nil), opts...),
		shell:       shell,
	}
	g.users[user] = us
	if g.metrics != nil {
		g.metrics.SetSessions(len(g.users))
	}
	return us, nil
}

func (g *registry) flush() {
	g.mu.Lock()
	users := make([]*userSession, 0, len(g.users))
	for _, us := range g.users {
		users = append(users, us)
	}
	g.mu.Unlock()
	for _, us := range users {
		us.session.Flush()
	}
}
