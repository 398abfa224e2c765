package cmd

import (
	"fmt"
	"strings"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/lang"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: lang.T("Show or change editor settings"),
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:     "set key=value...",
	Short:   lang.T("Change editor settings"),
	Example: `  speak settings set theme=light fontSize=16 wordWrap=true`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: lang.T("Restore default editor settings"),
	RunE:  runSettingsReset,
}

var settingsExportCmd = &cobra.Command{
	Use:   "export <file.yaml>",
	Short: lang.T("Write editor settings to a YAML file"),
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsExport,
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: lang.T("Load editor settings from a YAML file"),
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsImport,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd, settingsResetCmd, settingsExportCmd, settingsImportCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	st, sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()
	return yaml.NewEncoder(cmd.OutOrStdout()).Encode(sess.Settings())
}

// parsePatch key=value 的值按 YAML 标量解析，得到布尔与数字类型
func parsePatch(args []string) (map[string]any, error) {
	patch := make(map[string]any, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%s: %q", lang.T("expected key=value"), arg)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
			v = raw
		}
		patch[strings.TrimSpace(key)] = v
	}
	return patch, nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	patch, err := parsePatch(args)
	if err != nil {
		return err
	}
	st, sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		sess.Flush()
		st.Close()
	}()

	next, err := sess.Settings().Merge(patch)
	if err != nil {
		return err
	}
	sess.UpdateSettings(next)
	fmt.Fprintln(cmd.OutOrStdout(), lang.T("Settings saved"))
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	st, sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		sess.Flush()
		st.Close()
	}()
	sess.ResetSettings()
	fmt.Fprintln(cmd.OutOrStdout(), lang.T("Settings reset to defaults"))
	return nil
}

func runSettingsExport(cmd *cobra.Command, args []string) error {
	st, sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()
	if err := config.SaveSettingsFile(args[0], sess.Settings()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), args[0])
	return nil
}

func runSettingsImport(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettingsFile(args[0])
	if err != nil {
		return err
	}
	st, sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		sess.Flush()
		st.Close()
	}()
	sess.UpdateSettings(settings)
	fmt.Fprintln(cmd.OutOrStdout(), lang.T("Settings saved"))
	return nil
}
