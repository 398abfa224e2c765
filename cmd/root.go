package cmd

import (
	"fmt"
	"os"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/share"
	"github.com/spf13/cobra"
)

var (
	debugMode bool
	userName  string
	storeKind string
)

var RootCmd = rootCmd

var rootCmd = &cobra.Command{
	Use:   share.BUILDNAME,
	Short: lang.T("Voice command interpreter for a code editor"),
	Long:  lang.T("Turns spoken or typed phrases into file-tree and editor actions"),
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		share.SetDebug(debugMode)
		rt := runtimeConfig()
		lang.SetLanguage(rt.Lang)
		level := rt.LogLevel
		if debugMode {
			level = "debug"
		}
		return logger.Init(logger.Config{Level: level, Format: rt.LogFormat})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
		fmt.Fprintln(os.Stderr, lang.T("Invalid arguments")+": ", args)
		os.Exit(1)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtimeConfig 配置文件与环境变量，命令行参数优先
func runtimeConfig() config.Runtime {
	rt := config.CurrentRuntime()
	if userName != "" {
		rt.User = userName
	}
	if storeKind != "" {
		rt.Store = storeKind
	}
	return rt
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "v", false, lang.T("Debug mode"))
	rootCmd.PersistentFlags().StringVarP(&userName, "user", "u", "", lang.T("User whose workspace is used"))
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", lang.T("Storage backend (json, sqlite, redis)"))
}
