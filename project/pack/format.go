package pack

import (
	"fmt"
	"io"
	"strings"

	"github.com/sjzsdu/speak/project"
)

// Formatter 清单输出格式
type Formatter interface {
	Header(title string) string
	Format(path project.Path, node *project.Node) string
	Footer() string
	FileExtension() string
}

// MarkdownFormatter 每个文件一节，内容放在代码块中
type MarkdownFormatter struct{}

func (m *MarkdownFormatter) Header(title string) string {
	return fmt.Sprintf("# %s\n\n", title)
}

func (m *MarkdownFormatter) Format(path project.Path, node *project.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", path)
	fence := "```"
	for strings.Contains(node.Content, fence) {
		fence += "`"
	}
	fmt.Fprintf(&b, "%s%s\n%s", fence, node.Language, node.Content)
	if !strings.HasSuffix(node.Content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence + "\n\n")
	return b.String()
}

func (m *MarkdownFormatter) Footer() string { return "" }

func (m *MarkdownFormatter) FileExtension() string { return ".md" }

// GetFormatter 按名称取格式，目前只有 markdown
func GetFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return &MarkdownFormatter{}
	default:
		return &MarkdownFormatter{}
	}
}

// WriteListing 按树的顺序输出所有文件
func WriteListing(w io.Writer, fs *project.FileSystem, f Formatter) error {
	if f == nil {
		f = GetFormatter("")
	}
	if _, err := io.WriteString(w, f.Header(ProjectName(fs))); err != nil {
		return err
	}
	err := project.Walk(fs, func(p project.Path, n *project.Node, _ int) error {
		if !n.IsFile() {
			return nil
		}
		_, err := io.WriteString(w, f.Format(p, n))
		return err
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, f.Footer())
	return err
}
