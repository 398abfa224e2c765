package project

import (
	"errors"
	"strings"
)

// SkipChildren 由 VisitorFunc 返回时跳过当前文件夹的子节点
var SkipChildren = errors.New("skip children")

var errStop = errors.New("stop walk")

// Resolve 按路径逐级查找节点
func Resolve(fs *FileSystem, p Path) (*Node, error) {
	if fs.Empty() || len(p) == 0 {
		return nil, pathErr("resolve", p, ErrNotFound)
	}
	node := fs.Root(p[0])
	for _, name := range p[1:] {
		if node == nil {
			break
		}
		node = node.Child(name)
	}
	if node == nil {
		return nil, pathErr("resolve", p, ErrNotFound)
	}
	return node, nil
}

// ResolveFolder 路径必须指向文件夹，否则返回 ErrInvalidParent
func ResolveFolder(fs *FileSystem, p Path) (*Node, error) {
	n, err := Resolve(fs, p)
	if err != nil {
		return nil, err
	}
	if !n.IsFolder() {
		return nil, pathErr("resolve", p, ErrInvalidParent)
	}
	return n, nil
}

// Walk 深度优先前序遍历：根目录按顺序，同级按名称排序
func Walk(fs *FileSystem, fn VisitorFunc) error {
	if fs == nil {
		return nil
	}
	for _, r := range fs.Roots {
		if err := walkNode(Path{r.Name}, r, 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(p Path, n *Node, depth int, fn VisitorFunc) error {
	err := fn(p, n, depth)
	if err == SkipChildren {
		return nil
	}
	if err != nil {
		return err
	}
	if !n.IsFolder() {
		return nil
	}
	for _, name := range n.ChildNames() {
		if err := walkNode(p.Join(name), n.Children[name], depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// find 返回第一个满足条件的节点
func find(fs *FileSystem, match func(*Node) bool) (Path, *Node, error) {
	var (
		foundPath Path
		found     *Node
	)
	err := Walk(fs, func(p Path, n *Node, _ int) error {
		if match(n) {
			foundPath, found = p, n
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return nil, nil, err
	}
	if found == nil {
		return nil, nil, ErrNotFound
	}
	return foundPath, found, nil
}

// findNamed 先精确匹配名称，找不到时再忽略大小写匹配
func findNamed(fs *FileSystem, op, name string, kind func(*Node) bool) (Path, *Node, error) {
	p, n, err := find(fs, func(n *Node) bool { return kind(n) && n.Name == name })
	if err == ErrNotFound {
		p, n, err = find(fs, func(n *Node) bool { return kind(n) && strings.EqualFold(n.Name, name) })
	}
	if err != nil {
		return nil, nil, &PathError{Op: op, Path: name, Err: err}
	}
	return p, n, nil
}

func anyNode(*Node) bool { return true }

// FindByName 在所有根目录中按名称查找节点。
// 不同目录下存在同名节点时返回遍历顺序中的第一个。
// 语音转写会丢失大小写，所以精确匹配失败后会忽略大小写再找一次。
func FindByName(fs *FileSystem, name string) (Path, *Node, error) {
	return findNamed(fs, "find", name, anyNode)
}

// FindFileByName 只匹配文件
func FindFileByName(fs *FileSystem, name string) (Path, *Node, error) {
	return findNamed(fs, "find file", name, (*Node).IsFile)
}

// FindFolderByName 只匹配文件夹
func FindFolderByName(fs *FileSystem, name string) (Path, *Node, error) {
	return findNamed(fs, "find folder", name, (*Node).IsFolder)
}

// Files 所有文件的路径，顺序同 Walk
func Files(fs *FileSystem) []Path {
	var out []Path
	_ = Walk(fs, func(p Path, n *Node, _ int) error {
		if n.IsFile() {
			out = append(out, p)
		}
		return nil
	})
	return out
}

// Count 快照中文件与文件夹数量
func Count(fs *FileSystem) (files, folders int) {
	if fs == nil {
		return 0, 0
	}
	for _, r := range fs.Roots {
		f, d := r.CountNodes()
		files += f
		folders += d
	}
	return files, folders
}
