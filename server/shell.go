package server

import (
	"context"

	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/voice"
	"github.com/sjzsdu/speak/workspace"
)

type confirmKey struct{}

// withConfirm 把请求中的确认结果带给 Shell.Confirm
func withConfirm(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, ok)
}

// apiShell 对话框由客户端根据返回的效果自行打开
type apiShell struct {
	session *workspace.Session
}

// Confirm 请求未指明时视为已确认
func (s *apiShell) Confirm(ctx context.Context, _ string) bool {
	ok, set := ctx.Value(confirmKey{}).(bool)
	return !set || ok
}

func (s *apiShell) OpenHelp() error { return nil }

func (s *apiShell) OpenSettings() error { return nil }

func (s *apiShell) OpenImport() error { return nil }

func (s *apiShell) OpenExport() error { return nil }

func (s *apiShell) Logout() error { return nil }

func (s *apiShell) Download(project.Path, *project.Node) error { return nil }

func (s *apiShell) ToggleSidebar() bool { return s.session.ToggleSidebar() }

func (s *apiShell) StopListening() {}

var _ voice.Shell = (*apiShell)(nil)
