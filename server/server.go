// Package server HTTP 接口：文件快照、设置、语音指令与指标
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/metrics"
	"github.com/sjzsdu/speak/store"
	"github.com/sjzsdu/speak/voice"
	"github.com/sjzsdu/speak/workspace"
)

// UserHeader 请求用户，缺省为默认用户
const UserHeader = "X-User"

const shutdownTimeout = 10 * time.Second

// Server HTTP 服务
type Server struct {
	sessions *registry
	metrics  *metrics.Metrics
	router   chi.Router
}

// New 创建服务，m 为 nil 时不暴露 /metrics
func New(st store.Store, m *metrics.Metrics) *Server {
	s := &Server{
		sessions: newRegistry(st, m),
		metrics:  m,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, envelope{"success": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/files", func(r chi.Router) {
			r.Get("/", s.getFiles)
			r.Post("/", s.postFiles)
			r.Delete("/reset", s.resetFiles)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.getSettings)
			r.Put("/", s.putSettings)
			r.Post("/reset", s.resetSettings)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Post("/export", s.exportProject)
			r.Post("/import", s.importProject)
		})
		r.Post("/command", s.command)
		r.Get("/commands", s.commands)
	})
	return r
}

// Handler 根路由
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 监听 addr 直到 ctx 取消，然后优雅退出并等待会话保存完成
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", logger.Addr(addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.sessions.flush()
	logger.Info("http server stopped")
	return err
}

// Session 用户的工作区与解释器，HTTP 之外的入口（转写监听、MCP）共用同一个会话
func (s *Server) Session(ctx context.Context, user string) (*workspace.Session, *voice.Interpreter, error) {
	us, err := s.sessions.get(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return us.session, us.interpreter, nil
}

// Close 等待所有会话的后台保存
func (s *Server) Close() {
	s.sessions.flush()
}
