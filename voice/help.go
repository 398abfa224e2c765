package voice

import (
	"fmt"
	"strings"
)

// HelpGroup 帮助中的一组示例指令
type HelpGroup struct {
	Title    string   `json:"title"`
	Examples []string `json:"examples"`
}

// HelpGroups 可以说的指令示例
func HelpGroups() []HelpGroup {
	return []HelpGroup{
		{"Files", []string{
			"create file index.js", "create folder utils", "new file", "new folder",
			"make util.js under src", "make folder hooks under src",
			"open file app.js", "save", "close tab", "close all",
			"rename to main.js", "rename file a.js to b.js", "delete file notes.txt",
			"copy file a.js", "cut folder lib", "paste into src",
			"select file README.md", "download file app.js", "list files",
		}},
		{"Navigation", []string{
			"next tab", "previous tab", "first tab", "last tab",
			"go to line 42", "scroll to top", "scroll to bottom",
		}},
		{"Editing", []string{
			"select all", "copy", "cut", "paste", "undo", "redo", "format",
			"comment", "duplicate line", "delete line", "move line up", "move line down",
			"indent", "outdent",
		}},
		{"Search", []string{"find todo", "find next", "find previous", "replace foo with bar"}},
		{"View", []string{
			"toggle sidebar", "toggle minimap", "word wrap", "toggle line numbers",
			"zoom in", "zoom out", "reset zoom", "dark theme", "light theme", "high contrast",
		}},
		{"Session", []string{
			"import", "export", "settings", "reset settings", "help", "log out",
			"typing on", "typing off", "stop listening",
		}},
	}
}

// HelpMarkdown 以 markdown 输出帮助
func HelpMarkdown() string {
	var b strings.Builder
	b.WriteString("# " + tr("Voice commands") + "\n\n")
	for _, g := range HelpGroups() {
		fmt.Fprintf(&b, "## %s\n\n", tr(g.Title))
		for _, e := range g.Examples {
			fmt.Fprintf(&b, "- `%s`\n", e)
		}
		b.WriteString("\n")
	}
	return b.String()
}
