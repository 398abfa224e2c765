package cmd

import (
	"fmt"
	"strings"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/lang"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: lang.T("Set config"),
	Long:  lang.T("Set global configuration"),
	RunE:  handleConfigCommand,
}

var (
	showAllConfigs bool
	clearConfigs   []string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVarP(&showAllConfigs, "list", "l", false, lang.T("List all configurations"))
	configCmd.Flags().StringSliceVar(&clearConfigs, "clear", nil, lang.T("Remove configuration keys"))

	for _, key := range config.GetAllConfigKeys() {
		desc := lang.T(config.GetConfigDescription(key))
		if opts := config.GetConfigOptions(key); len(opts) > 0 {
			desc += " (" + strings.Join(opts, ", ") + ")"
		}
		configCmd.Flags().String(key, config.GetConfig(key), desc)
	}
}

func handleConfigCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if showAllConfigs {
		fmt.Fprintln(out, lang.T("Current configurations:"))
		for _, key := range config.GetAllConfigKeys() {
			if value := config.GetConfig(key); value != "" {
				fmt.Fprintf(out, "%s=%s\n", config.GetEnvKey(key), value)
			}
		}
		return nil
	}

	changed := false
	for _, key := range config.GetAllConfigKeys() {
		flag := cmd.Flag(key)
		if flag == nil || !flag.Changed {
			continue
		}
		value, _ := cmd.Flags().GetString(key)
		if !config.IsValidConfigOption(key, value) {
			return fmt.Errorf("%s: %s %q, %s %v", key, lang.T("invalid value"), value, lang.T("expected one of"), config.GetConfigOptions(key))
		}
		config.SetConfig(key, value)
		changed = true
	}
	for _, key := range clearConfigs {
		config.ClearConfig(strings.TrimSpace(key))
		changed = true
	}

	if !changed {
		return cmd.Help()
	}
	if err := config.SaveConfig(); err != nil {
		return fmt.Errorf("%s: %w", lang.T("Error saving config"), err)
	}
	fmt.Fprintln(out, lang.T("Configuration saved"))
	return nil
}
