package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/sjzsdu/speak/cmdio"
	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/helper/renders"
	"github.com/sjzsdu/speak/lang"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [utterance...]",
	Short: lang.T("Run voice commands non-interactively"),
	Long:  lang.T("Each argument is one command. Without arguments, commands are read from standard input, one per line."),
	Example: `  speak run "create file app.js" "open file app.js"
  cat transcript.txt | speak run`,
	RunE: runRun,
}

func init() {
	addHostFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

// argsReader 依次返回参数，用完后 io.EOF
func argsReader(args []string) cmdio.InputStringFunc {
	return helper.LineReader(strings.NewReader(strings.Join(args, "\n")))
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	a, err := openApp(ctx, out, nil)
	if err != nil {
		return err
	}
	defer a.Close()
	a.host.OnStop = cancel

	input := argsReader(args)
	if len(args) == 0 {
		input = helper.LineReader(cmd.InOrStdin())
		// 标准输入已用于指令，确认对话框只能自动通过
		a.host.Prompt = nil
	}

	session := cmdio.NewInteractiveSession(
		a.interpreter,
		cmdio.WithRenderer(renders.NewTextRenderer(out)),
		cmdio.WithInputFunc(input),
		cmdio.WithEcho(true),
	)
	if err := session.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
