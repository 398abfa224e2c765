package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/project/pack"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: lang.T("Export the workspace"),
	Long: lang.T("Export the workspace as a zip archive, a JSON project file, a markdown or PDF listing, " +
		"a plain directory, or a commit in a git repository"),
	Example: `  speak export -f zip
  speak export -f json -o backup.json
  speak export -f git -o ./repo -m "voice session"`,
	RunE: runExport,
}

var (
	exportFormat  string
	exportOutput  string
	exportFolder  string
	exportMessage string
	exportAuthor  string
	exportEmail   string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "zip", lang.T("zip, json, md, pdf, dir or git"))
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", lang.T("Output file or directory"))
	exportCmd.Flags().StringVar(&exportFolder, "folder", "", lang.T("Only export this folder (zip and dir)"))
	exportCmd.Flags().StringVarP(&exportMessage, "message", "m", "Export from speak", lang.T("Commit message (git)"))
	exportCmd.Flags().StringVar(&exportAuthor, "author", defaultAuthor, lang.T("Commit author name (git)"))
	exportCmd.Flags().StringVar(&exportEmail, "email", "speak@localhost", lang.T("Commit author email (git)"))
	rootCmd.AddCommand(exportCmd)
}

const defaultAuthor = "speak"

var fileExtensions = map[string]string{
	"zip":  ".zip",
	"json": ".json",
	"md":   ".md",
	"pdf":  ".pdf",
}

func runExport(cmd *cobra.Command, args []string) error {
	st, sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	fs := sess.Snapshot()
	format := strings.ToLower(exportFormat)
	out := cmd.OutOrStdout()

	var folder *project.Node
	if exportFolder != "" {
		folder, err = project.ResolveFolder(fs, project.ParsePath(exportFolder))
		if err != nil {
			return err
		}
	}

	switch format {
	case "git":
		dir := exportOutput
		if dir == "" {
			dir = "."
		}
		hash, err := pack.CommitToGit(dir, fs, exportMessage, pack.Author{Name: exportAuthor, Email: exportEmail})
		if errors.Is(err, pack.ErrNothingToCommit) {
			fmt.Fprintln(out, lang.T("Nothing to commit"))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", lang.T("Committed"), hash)
		return nil

	case "dir":
		dir := exportOutput
		if dir == "" {
			dir = "."
		}
		nodes := fs.Roots
		if folder != nil {
			nodes = []*project.Node{folder}
		}
		for _, n := range nodes {
			if err := pack.WriteDir(dir, n); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, dir)
		return nil
	}

	ext, ok := fileExtensions[format]
	if !ok {
		return fmt.Errorf("%s: %s", lang.T("unknown export format"), exportFormat)
	}
	name := pack.ProjectName(fs)
	if folder != nil {
		name = folder.Name
	}
	path := exportOutput
	if path == "" {
		path = pack.FileName(name, ext)
	}

	var write func(io.Writer) error
	switch format {
	case "zip":
		write = func(w io.Writer) error {
			if folder != nil {
				return pack.ExportNodeZip(w, folder)
			}
			return pack.ExportZip(w, fs)
		}
	case "json":
		write = func(w io.Writer) error { return pack.ExportJSON(w, fs) }
	case "md":
		write = func(w io.Writer) error { return pack.WriteListing(w, fs, pack.GetFormatter(format)) }
	case "pdf":
		write = func(w io.Writer) error { return pack.WritePDF(w, fs) }
	}

	if err := writeFile(path, write); err != nil {
		return err
	}
	logger.Info("exported", logger.Path(path))
	fmt.Fprintln(out, path)
	return nil
}

// writeFile 写入失败时删除不完整的文件
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
