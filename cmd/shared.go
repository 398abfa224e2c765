package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/helper/renders"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/store"
	"github.com/sjzsdu/speak/voice"
	"github.com/sjzsdu/speak/workspace"
	"github.com/spf13/cobra"
)

var (
	outputDir string
	assumeYes bool
)

// addHostFlags 需要宿主对话框的命令共用
func addHostFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputDir, "out", "o", ".", lang.T("Directory for downloads and exports"))
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, lang.T("Confirm every prompt automatically"))
}

// app 一个用户的工作区，以及驱动它的解释器
type app struct {
	store       store.Store
	session     *workspace.Session
	host        *workspace.Host
	interpreter *voice.Interpreter
}

// openStore 按配置打开存储
func openStore() (store.Store, error) {
	rt := runtimeConfig()
	st, err := store.Open(rt)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", lang.T("open store"), rt.Store, err)
	}
	return st, nil
}

// openSession 只加载工作区，不创建解释器
func openSession(ctx context.Context) (store.Store, *workspace.Session, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	sess, err := workspace.Open(ctx, st, runtimeConfig().User)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, sess, nil
}

// openApp 加载工作区并装配终端宿主
func openApp(ctx context.Context, out io.Writer, notifier voice.Notifier, opts ...voice.Option) (*app, error) {
	st, sess, err := openSession(ctx)
	if err != nil {
		return nil, err
	}
	host := &workspace.Host{
		Session: sess,
		Out:     out,
		Dir:     outputDir,
		Render:  markdownTo(out),
	}
	if !assumeYes {
		host.Prompt = func(ctx context.Context, message string) bool {
			ok, err := helper.PromptYesNo(message+" (y/N) ", false)
			if err != nil {
				logger.Debug("confirm read failed", logger.Err(err))
				return false
			}
			return ok
		}
	}
	a := &app{
		store:       st,
		session:     sess,
		host:        host,
		interpreter: voice.NewInterpreter(sess.Capabilities(host, notifier), opts...),
	}
	return a, nil
}

// Close 等待持久化完成后关闭存储
func (a *app) Close() {
	a.session.Flush()
	if err := a.store.Close(); err != nil {
		logger.Warn("close store", logger.Err(err))
	}
}

// markdownTo glamour 渲染，初始化失败时原样输出
func markdownTo(out io.Writer) func(string) error {
	return func(md string) error {
		r, err := renders.NewMarkdownRenderer(out, "")
		if err != nil {
			_, werr := io.WriteString(out, md)
			return werr
		}
		if err := r.WriteStream(md); err != nil {
			return err
		}
		r.Done()
		return nil
	}
}
