package cmd

import (
	"fmt"

	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/lang"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: lang.T("Reset the workspace to the default project"),
	RunE:  runReset,
}

var resetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, lang.T("Do not ask for confirmation"))
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		ok, err := helper.PromptYesNoFrom(cmd.InOrStdin(), cmd.OutOrStdout(), lang.T("All files will be replaced by the default project. Continue? (y/N) "), false)
		if err != nil || !ok {
			fmt.Fprintln(cmd.OutOrStdout(), lang.T("Reset cancelled"))
			return nil
		}
	}

	st, sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := sess.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), lang.T("Workspace reset"))
	return nil
}
