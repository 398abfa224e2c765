package cmd

import (
	"fmt"
	"sort"

	"github.com/sjzsdu/speak/lang"
	prjtree "github.com/sjzsdu/speak/project/tree"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: lang.T("Show the file tree of the workspace"),
	RunE:  runTree,
}

var (
	treeDepth     int
	treeDirsOnly  bool
	treeShowStats bool
)

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "L", 0, lang.T("Maximum depth, 0 for unlimited"))
	treeCmd.Flags().BoolVar(&treeDirsOnly, "dirs-only", false, lang.T("Only show folders"))
	treeCmd.Flags().BoolVar(&treeShowStats, "stats", false, lang.T("Show statistics"))
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	st, sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	settings := sess.Settings()
	fs := sess.Snapshot()
	out := cmd.OutOrStdout()

	// 与资源管理器使用同样的排序与显示设置
	opts := prjtree.Options{
		ShowFiles:      !treeDirsOnly,
		ShowHidden:     settings.ShowHiddenFiles,
		MaxDepth:       treeDepth,
		SortBy:         settings.SortBy,
		CompactFolders: settings.CompactFolders,
	}
	fmt.Fprint(out, prjtree.Render(fs, opts))

	if treeShowStats {
		s := prjtree.Stats(fs)
		fmt.Fprintf(out, "\n%d %s, %d %s, %d bytes\n", s.DirectoryCount, lang.T("folders"), s.FileCount, lang.T("files"), s.TotalSize)
		langs := make([]string, 0, len(s.Languages))
		for l := range s.Languages {
			langs = append(langs, l)
		}
		sort.Strings(langs)
		for _, l := range langs {
			fmt.Fprintf(out, "  %-12s %d\n", l, s.Languages[l])
		}
	}
	return nil
}
