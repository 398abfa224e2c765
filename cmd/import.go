package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/project/pack"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [archive.zip|project.json|directory]",
	Short: lang.T("Import files into the workspace"),
	Long: lang.T("Import a zip archive, a JSON project file, a directory or a git repository. " +
		"Imported folders become new top-level folders unless --into is given."),
	Example: `  speak import site.zip
  speak import backup.json --replace
  speak import ./src --into my-project
  speak import --git https://github.com/user/repo.git`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var (
	importInto    string
	importReplace bool
	importGitURL  string
	importHidden  bool
	importExts    []string
)

func init() {
	importCmd.Flags().StringVar(&importInto, "into", "", lang.T("Folder to import into"))
	importCmd.Flags().BoolVar(&importReplace, "replace", false, lang.T("Replace the whole workspace with a JSON project file"))
	importCmd.Flags().StringVar(&importGitURL, "git", "", lang.T("Clone and import a git repository"))
	importCmd.Flags().BoolVar(&importHidden, "hidden", false, lang.T("Include hidden files when importing a directory"))
	importCmd.Flags().StringSliceVarP(&importExts, "extensions", "e", nil, lang.T("Only import files with these extensions when importing a directory"))
	rootCmd.AddCommand(importCmd)
}

// loadImport 读取导入源；JSON 项目文件返回整个快照，其余返回一个节点
func loadImport(cmd *cobra.Command, src string) (*project.FileSystem, *project.Node, error) {
	opts := pack.DefaultReadOptions()
	opts.IncludeHidden = importHidden
	opts.Extensions = importExts

	if importGitURL != "" {
		dir, err := helper.CloneProject(importGitURL, cmd.ErrOrStderr())
		if err != nil {
			return nil, nil, err
		}
		defer os.RemoveAll(dir)
		n, err := pack.ReadDir(dir, opts)
		if err != nil {
			return nil, nil, err
		}
		n.Name = strings.TrimSuffix(path.Base(strings.TrimRight(importGitURL, "/")), ".git")
		return nil, n, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		n, err := pack.ReadDir(src, opts)
		return nil, n, err
	}

	switch strings.ToLower(filepath.Ext(src)) {
	case ".zip":
		n, err := pack.ImportZipFile(src)
		return nil, n, err
	case ".json":
		f, err := os.Open(src)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		fs, err := pack.ImportJSON(f)
		return fs, nil, err
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, nil, err
		}
		return nil, project.NewFile(filepath.Base(src), string(data)), nil
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && importGitURL == "" {
		return cmd.Help()
	}
	src := ""
	if len(args) > 0 {
		src = args[0]
	}

	imported, node, err := loadImport(cmd, src)
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

	out := cmd.OutOrStdout()
	if imported != nil && importReplace {
		sess.Commit(imported)
		fmt.Fprintf(out, "%s: %s\n", lang.T("Workspace replaced"), pack.ProjectName(imported))
		return nil
	}

	var entries []*project.Node
	if imported != nil {
		entries = imported.Roots
	} else {
		entries = []*project.Node{node}
	}

	next, names, err := project.ImportTree(sess.Snapshot(), project.ParsePath(importInto), entries...)
	if err != nil {
		return err
	}
	sess.Commit(next)
	fmt.Fprintf(out, "%s: %s\n", lang.T("Imported"), strings.Join(names, ", "))
	return nil
}
