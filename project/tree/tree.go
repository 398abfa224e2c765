package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sjzsdu/speak/project"
)

// Options 控制资源管理器式的树形输出，对应编辑器设置中的 sortBy、showHiddenFiles、compactFolders
type Options struct {
	ShowFiles      bool
	ShowHidden     bool
	MaxDepth       int    // 0 表示不限
	SortBy         string // name | type
	CompactFolders bool   // 只有一个子文件夹的目录合并显示为 a/b/
}

// DefaultOptions 显示文件、隐藏点文件、按名称排序
func DefaultOptions() Options {
	return Options{ShowFiles: true, SortBy: "name"}
}

// Tree 生成单个节点的树状结构，类似于 Unix tree 命令
func Tree(node *project.Node) string {
	return TreeWithOptions(node, DefaultOptions())
}

// TreeWithOptions 生成带选项的树状结构
func TreeWithOptions(node *project.Node, opts Options) string {
	if node == nil {
		return ""
	}
	var b strings.Builder
	writeNode(&b, node, "", true, true, 0, opts)
	return b.String()
}

// Render 依次输出所有根目录
func Render(fs *project.FileSystem, opts Options) string {
	if fs.Empty() {
		return ""
	}
	var b strings.Builder
	for _, r := range fs.Roots {
		writeNode(&b, r, "", true, true, 0, opts)
	}
	return b.String()
}

func visible(n *project.Node, opts Options) bool {
	if !opts.ShowHidden && strings.HasPrefix(n.Name, ".") {
		return false
	}
	return opts.ShowFiles || n.IsFolder()
}

func children(n *project.Node, opts Options) []*project.Node {
	out := make([]*project.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if visible(c, opts) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if opts.SortBy == "type" {
			ei, ej := extOf(out[i]), extOf(out[j])
			if ei != ej {
				return ei < ej
			}
		}
		// 文件夹优先，然后按名称排序
		if out[i].IsFolder() != out[j].IsFolder() {
			return out[i].IsFolder()
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func extOf(n *project.Node) string {
	if n.IsFolder() {
		return ""
	}
	if i := strings.LastIndex(n.Name, "."); i > 0 {
		return strings.ToLower(n.Name[i+1:])
	}
	return ""
}

func writeNode(b *strings.Builder, node *project.Node, prefix string, isLast, isRoot bool, depth int, opts Options) {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return
	}
	if !isRoot {
		if isLast {
			b.WriteString(prefix + "└── ")
		} else {
			b.WriteString(prefix + "├── ")
		}
	}

	if node.IsFile() {
		b.WriteString(node.Name)
		if len(node.Content) > 0 {
			b.WriteString(fmt.Sprintf(" (%s)", humanSize(int64(len(node.Content)))))
		}
		b.WriteString("\n")
		return
	}

	name := node.Name + "/"
	kids := children(node, opts)
	if opts.CompactFolders && !isRoot {
		for len(kids) == 1 && kids[0].IsFolder() {
			node = kids[0]
			name += node.Name + "/"
			kids = children(node, opts)
		}
	}
	b.WriteString(name + "\n")

	var next string
	switch {
	case isRoot:
		next = ""
	case isLast:
		next = prefix + "    "
	default:
		next = prefix + "│   "
	}
	for i, child := range kids {
		writeNode(b, child, next, i == len(kids)-1, false, depth+1, opts)
	}
}

func humanSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
