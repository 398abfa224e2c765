package cmd

import (
	"encoding/json"

	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/voice"
	"github.com/spf13/cobra"
)

var helpVoiceCmd = &cobra.Command{
	Use:   "help-voice",
	Short: lang.T("List the commands you can say"),
	RunE:  runHelpVoice,
}

var helpVoiceJSON bool

func init() {
	helpVoiceCmd.Flags().BoolVar(&helpVoiceJSON, "json", false, lang.T("Print as JSON"))
	rootCmd.AddCommand(helpVoiceCmd)
}

func runHelpVoice(cmd *cobra.Command, args []string) error {
	if helpVoiceJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(voice.HelpGroups())
	}
	return markdownTo(cmd.OutOrStdout())(voice.HelpMarkdown())
}
