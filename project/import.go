package project

import (
	"sort"
	"strings"
)

// ImportTree 把外部节点（压缩包、拖入的目录等）合并到 parent 下。
// parent 为空时每个节点成为新的根目录。每一层都按创建规则去重，
// 每个文件都重新推断语言。返回导入后各顶层节点的最终名称。
func ImportTree(fs *FileSystem, parent Path, entries ...*Node) (*FileSystem, []string, error) {
	var (
		next  *FileSystem
		dir   *Node
		names []string
	)
	if len(parent) > 0 {
		if _, err := ResolveFolder(fs, parent); err != nil {
			return nil, nil, pathErr("import", parent, ErrInvalidParent)
		}
		next = fs.Clone()
		dir, _ = ResolveFolder(next, parent)
	} else {
		next = fs.Clone()
	}

	for _, e := range entries {
		if e == nil {
			continue
		}
		if err := ValidateName(e.Name); err != nil {
			return nil, nil, err
		}
		n := adopt(e, e.Name)
		if dir != nil {
			n.IsRoot = false
			n.Name = uniqueName(dir.Children, n.Name, n.Type)
			dir.AddChild(n)
		} else {
			if !n.IsFolder() {
				return nil, nil, pathErr("import", Path{e.Name}, ErrInvalidParent)
			}
			n.Name = uniqueName(next.rootNames(), n.Name, TypeFolder)
			n.IsRoot = true
			next.Roots = append(next.Roots, n)
		}
		names = append(names, n.Name)
	}
	if dir != nil {
		dir.touch()
	}
	return next, names, nil
}

// adopt 复制外部节点，子节点名称取自父级的键
func adopt(src *Node, name string) *Node {
	t := now()
	isFolder := src.Type == TypeFolder || (src.Type == "" && src.Children != nil)
	if !isFolder {
		n := NewFile(name, src.Content)
		n.CreatedAt, n.UpdatedAt = t, t
		return n
	}
	n := NewFolder(name)
	keys := make([]string, 0, len(src.Children))
	for k := range src.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c := src.Children[k]
		if c == nil || ValidateName(k) != nil {
			continue
		}
		n.AddChild(adopt(c, k))
	}
	return n
}

// Flatten 导出为 相对路径 -> 内容 的映射，空文件夹以 "dir/" 形式保留
func Flatten(n *Node) map[string]string {
	out := make(map[string]string)
	if n.IsFile() {
		out[n.Name] = n.Content
		return out
	}
	flatten(n, "", out)
	return out
}

func flatten(n *Node, prefix string, out map[string]string) {
	for name, c := range n.Children {
		p := prefix + name
		if c.IsFile() {
			out[p] = c.Content
			continue
		}
		if len(c.Children) == 0 {
			out[p+PathSeparator] = ""
			continue
		}
		flatten(c, p+PathSeparator, out)
	}
}

// Unflatten 由 Flatten 的结果重建名为 name 的文件夹
func Unflatten(name string, files map[string]string) *Node {
	root := NewFolder(name)
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		isDir := strings.HasSuffix(k, PathSeparator)
		segs := ParsePath(k)
		if len(segs) == 0 {
			continue
		}
		dir := root
		last := len(segs) - 1
		if isDir {
			last = len(segs)
		}
		for _, seg := range segs[:last] {
			child := dir.Child(seg)
			if child == nil {
				child = NewFolder(seg)
				dir.AddChild(child)
			} else if !child.IsFolder() {
				// 同名文件已存在，无法再作为目录
				dir = nil
				break
			}
			dir = child
		}
		if dir == nil || isDir {
			continue
		}
		base := segs[last]
		if _, exists := dir.Children[base]; exists {
			continue
		}
		dir.AddChild(NewFile(base, files[k]))
	}
	return root
}
