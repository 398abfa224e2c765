package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/listen"
	"github.com/sjzsdu/speak/notify"
	"github.com/sjzsdu/speak/voice"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen [transcript]",
	Short: lang.T("Listen continuously to a transcript file"),
	Long: lang.T("Every line appended to the transcript file is a finalized utterance. " +
		"Saying \"stop listening\" or pressing Ctrl+C ends the session."),
	Args: cobra.MaximumNArgs(1),
	RunE: runListen,
}

var listenFromStart bool

func init() {
	addHostFlags(listenCmd)
	listenCmd.Flags().BoolVar(&listenFromStart, "from-start", false, lang.T("Also handle lines already in the transcript"))
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	path := runtimeConfig().Transcript
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return errors.New(lang.T("no transcript file given, pass one or set the transcript config key"))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := notify.NewQueue(notify.NewWriterSink(cmd.OutOrStdout()))
	defer queue.Close()

	a, err := openApp(ctx, cmd.OutOrStdout(), queue)
	if err != nil {
		return err
	}
	defer a.Close()

	var opts []listen.Option
	if listenFromStart {
		opts = append(opts, listen.FromStart())
	}
	var l *listen.FileListener
	l = listen.NewFileListener(path, func(ctx context.Context, utterance string) {
		if _, err := a.interpreter.Handle(ctx, utterance); err != nil {
			if errors.Is(err, voice.ErrBusy) {
				logger.Info("utterance dropped", logger.Utterance(utterance))
				return
			}
			logger.Warn("handle utterance", logger.Utterance(utterance), logger.Err(err))
		}
	}, opts...)
	a.host.OnStop = func() { l.Stop() }

	if err := l.Start(ctx); err != nil {
		// 转写源不可用时只报告一次，监听保持关闭
		queue.Notify(fmt.Sprintf(lang.T("Microphone unavailable: %v"), err), voice.SeverityError)
		return err
	}
	if err := l.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		queue.Notify(fmt.Sprintf(lang.T("Microphone unavailable: %v"), err), voice.SeverityError)
		return err
	}
	return nil
}
