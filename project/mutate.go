package project

import (
	"strconv"
	"strings"
)

const (
	// QuickFileName "new file" 使用的默认文件名
	QuickFileName = "newfile.txt"
	// QuickFolderName "new folder" 使用的默认文件夹名
	QuickFolderName = "newfolder"
)

// ValidateName 名称不能为空，不能包含路径分隔符，也不能是 . 或 ..
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." ||
		strings.Contains(name, PathSeparator) || strings.Contains(name, "\\") {
		return &PathError{Op: "validate", Path: name, Err: ErrInvalidName}
	}
	return nil
}

// UniqueName 在 taken 中为 name 找一个未占用的名称：name、name1、name2……
// 文件的序号插在扩展名之前，文件夹直接追加
func UniqueName(taken func(string) bool, name string, typ NodeType) string {
	if !taken(name) {
		return name
	}
	stem, ext := name, ""
	if typ == TypeFile {
		if i := strings.LastIndex(name, "."); i > 0 {
			stem, ext = name[:i], name[i:]
		}
	}
	for i := 1; ; i++ {
		candidate := stem + strconv.Itoa(i) + ext
		if !taken(candidate) {
			return candidate
		}
	}
}

func uniqueName(siblings map[string]*Node, name string, typ NodeType) string {
	return UniqueName(func(s string) bool {
		_, ok := siblings[s]
		return ok
	}, name, typ)
}

// CreateNode 在 parent 下创建文件或文件夹，重名时自动加序号，返回新快照与最终名称
func CreateNode(fs *FileSystem, parent Path, name string, typ NodeType, content string) (*FileSystem, string, error) {
	if err := ValidateName(name); err != nil {
		return nil, "", err
	}
	if _, err := ResolveFolder(fs, parent); err != nil {
		return nil, "", pathErr("create", parent, ErrInvalidParent)
	}

	next := fs.Clone()
	dir, _ := ResolveFolder(next, parent)

	final := uniqueName(dir.Children, name, typ)
	var n *Node
	if typ == TypeFolder {
		n = NewFolder(final)
	} else {
		n = NewFile(final, content)
	}
	dir.AddChild(n)
	dir.touch()
	return next, final, nil
}

// CreateRoot 新增一个根目录
func CreateRoot(fs *FileSystem, name string) (*FileSystem, string, error) {
	if err := ValidateName(name); err != nil {
		return nil, "", err
	}
	next := fs.Clone()
	final := uniqueName(next.rootNames(), name, TypeFolder)
	r := NewFolder(final)
	r.IsRoot = true
	next.Roots = append(next.Roots, r)
	return next, final, nil
}

// QuickCreate 在第一个根目录下创建 newfile.txt 或 newfolder
func QuickCreate(fs *FileSystem, typ NodeType) (*FileSystem, Path, error) {
	root := fs.FirstRoot()
	if root == nil {
		return nil, nil, &PathError{Op: "create", Err: ErrInvalidParent}
	}
	name := QuickFileName
	if typ == TypeFolder {
		name = QuickFolderName
	}
	next, final, err := CreateNode(fs, root, name, typ, "")
	if err != nil {
		return nil, nil, err
	}
	return next, root.Join(final), nil
}

// RenameNode 重命名节点。新旧名称相同时直接返回原快照，不更新时间戳。
func RenameNode(fs *FileSystem, p Path, newName string) (*FileSystem, error) {
	n, err := Resolve(fs, p)
	if err != nil {
		return nil, err
	}
	if n.Name == newName {
		return fs, nil
	}
	if err := ValidateName(newName); err != nil {
		return nil, err
	}

	if p.IsRoot() {
		if fs.Root(newName) != nil {
			return nil, pathErr("rename", p.Parent().Join(newName), ErrNameCollision)
		}
		next := fs.Clone()
		r := next.Roots[next.rootIndex(p[0])]
		r.Name = newName
		r.touch()
		return next, nil
	}

	parent, _ := Resolve(fs, p.Parent())
	if _, ok := parent.Children[newName]; ok {
		return nil, pathErr("rename", p.Parent().Join(newName), ErrNameCollision)
	}

	next := fs.Clone()
	dir, _ := Resolve(next, p.Parent())
	node := dir.Children[n.Name]
	dir.RemoveChild(n.Name)
	node.Name = newName
	if node.IsFile() {
		node.Language = DetectLanguage(newName)
	}
	node.touch()
	dir.AddChild(node)
	dir.touch()
	return next, nil
}

// DeleteNode 删除节点及其子树
func DeleteNode(fs *FileSystem, p Path) (*FileSystem, error) {
	if _, err := Resolve(fs, p); err != nil {
		return nil, err
	}
	next := fs.Clone()
	if p.IsRoot() {
		i := next.rootIndex(p[0])
		next.Roots = append(next.Roots[:i], next.Roots[i+1:]...)
		return next, nil
	}
	dir, _ := Resolve(next, p.Parent())
	dir.RemoveChild(p.Base())
	dir.touch()
	return next, nil
}

// UpdateContent 保存文件内容
func UpdateContent(fs *FileSystem, p Path, content string) (*FileSystem, error) {
	n, err := Resolve(fs, p)
	if err != nil {
		return nil, err
	}
	if !n.IsFile() {
		return nil, pathErr("save", p, ErrIsFolder)
	}
	if n.Content == content {
		return fs, nil
	}
	next := fs.Clone()
	f, _ := Resolve(next, p)
	f.Content = content
	f.touch()
	return next, nil
}
