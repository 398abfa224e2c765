package workspace

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/project/pack"
	"github.com/sjzsdu/speak/voice"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Host 终端宿主，对话框以文本形式输出到 Out
type Host struct {
	Session *Session
	Out     io.Writer
	// Dir 下载与导出文件的目标目录
	Dir string
	// Prompt 询问用户，为 nil 时总是确认
	Prompt func(ctx context.Context, message string) bool
	// Render 输出 markdown，为 nil 时原样写出
	Render   func(markdown string) error
	OnStop   func()
	OnLogout func() error
}

func (h *Host) out() io.Writer {
	if h.Out == nil {
		return os.Stdout
	}
	return h.Out
}

func (h *Host) Confirm(ctx context.Context, message string) bool {
	if h.Prompt == nil {
		return true
	}
	return h.Prompt(ctx, message)
}

func (h *Host) OpenHelp() error {
	md := voice.HelpMarkdown()
	if h.Render != nil {
		return h.Render(md)
	}
	_, err := io.WriteString(h.out(), md)
	return err
}

// OpenSettings 以 YAML 输出当前设置
func (h *Host) OpenSettings() error {
	data, err := yaml.Marshal(h.Session.Settings())
	if err != nil {
		return err
	}
	_, err = h.out().Write(data)
	return err
}

func (h *Host) OpenImport() error {
	_, err := fmt.Fprintln(h.out(), `speak import <archive.zip|project.json>`)
	return err
}

// OpenExport 把当前快照导出为 zip
func (h *Host) OpenExport() error {
	fs := h.Session.Snapshot()
	name := pack.ProjectName(fs)
	path := filepath.Join(h.dir(), name+".zip")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pack.ExportZip(f, fs); err != nil {
		return err
	}
	logger.Info("exported", logger.Path(path))
	_, err = fmt.Fprintln(h.out(), path)
	return err
}

// Download 文件直接写出，文件夹打包为 zip
func (h *Host) Download(p project.Path, n *project.Node) error {
	path, err := pack.SaveNode(h.dir(), n)
	if err != nil {
		return err
	}
	logger.Info("downloaded", zap.String("node", p.String()), logger.Path(path))
	return nil
}

func (h *Host) Logout() error {
	if h.OnLogout == nil {
		return nil
	}
	return h.OnLogout()
}

func (h *Host) ToggleSidebar() bool {
	return h.Session.ToggleSidebar()
}

func (h *Host) StopListening() {
	if h.OnStop != nil {
		h.OnStop()
	}
}

func (h *Host) dir() string {
	if h.Dir == "" {
		return "."
	}
	return h.Dir
}

var _ voice.Shell = (*Host)(nil)
