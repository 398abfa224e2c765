package cmd

import (
	"fmt"

	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/share"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: lang.T("Print version information"),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", lang.T("speak version"), share.VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
