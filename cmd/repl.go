package cmd

import (
	"context"
	"errors"

	"github.com/sjzsdu/speak/cmdio"
	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/voice"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: lang.T("Type voice commands at a prompt"),
	Long:  lang.T("Start an interactive session where each line is handled as a spoken command"),
	RunE:  runRepl,
}

func init() {
	addHostFlags(replCmd)
	rootCmd.AddCommand(replCmd)
}

// suggestions 补全候选取自帮助中的示例
func suggestions() []string {
	var out []string
	for _, g := range voice.HelpGroups() {
		out = append(out, g.Examples...)
	}
	return out
}

func runRepl(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := openApp(ctx, cmd.OutOrStdout(), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	// "stop listening" 与 "log out" 都结束会话
	a.host.OnStop = cancel
	a.host.OnLogout = func() error {
		cancel()
		return nil
	}

	session := cmdio.NewInteractiveSession(
		a.interpreter,
		cmdio.WithWelcome(lang.T("Speak is listening. Say \"help\" to see what you can say.")),
		cmdio.WithTips(
			lang.T("Press Ctrl+V to dictate a longer text in vim"),
			lang.T("Type quit or exit to leave"),
		),
		cmdio.WithPrompt("🎤 "),
		cmdio.WithInputFunc(helper.InputWithSuggestions(suggestions())),
	)
	if err := session.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
