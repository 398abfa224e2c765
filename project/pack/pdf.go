package pack

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjzsdu/speak/project"
)

// WritePDF 输出打印用的清单：标题、文件数量、每个文件一节
func WritePDF(w io.Writer, fs *project.FileSystem) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ProjectName(fs), true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(ProjectName(fs)), "", 1, "L", false, 0, "")
	files, folders := project.Count(fs)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d files, %d folders", files, folders), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	err := project.Walk(fs, func(p project.Path, n *project.Node, _ int) error {
		if !n.IsFile() {
			return nil
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(p.String()), "B", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 9)
		content := strings.ReplaceAll(n.Content, "\t", "    ")
		if content == "" {
			content = " "
		}
		pdf.MultiCell(0, 4, tr(content), "", "L", false)
		pdf.Ln(4)
		return nil
	})
	if err != nil {
		return err
	}
	return pdf.Output(w)
}
