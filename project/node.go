package project

import (
	"sort"
	"strings"
)

// NewFile 创建文件节点，语言根据扩展名推断
func NewFile(name, content string) *Node {
	t := now()
	return &Node{
		Type:      TypeFile,
		Name:      name,
		Content:   content,
		Language:  DetectLanguage(name),
		CreatedAt: t,
		UpdatedAt: t,
	}
}

// NewFolder 创建空文件夹
func NewFolder(name string) *Node {
	t := now()
	return &Node{
		Type:      TypeFolder,
		Name:      name,
		Children:  make(map[string]*Node),
		CreatedAt: t,
		UpdatedAt: t,
	}
}

func (n *Node) IsFolder() bool { return n != nil && n.Type == TypeFolder }

func (n *Node) IsFile() bool { return n != nil && n.Type == TypeFile }

// Child 按名称获取直接子节点
func (n *Node) Child(name string) *Node {
	if !n.IsFolder() {
		return nil
	}
	return n.Children[name]
}

// AddChild 以子节点名称为键挂载，调用方负责保证名称唯一
func (n *Node) AddChild(child *Node) {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	n.Children[child.Name] = child
}

// RemoveChild 删除直接子节点，返回是否存在
func (n *Node) RemoveChild(name string) bool {
	if _, ok := n.Children[name]; !ok {
		return false
	}
	delete(n.Children, name)
	return true
}

// ChildNames 子节点名称，按名称排序
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedChildren 文件夹在前，同类按名称排序（不区分大小写）
func (n *Node) SortedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsFolder() != out[j].IsFolder() {
			return out[i].IsFolder()
		}
		li, lj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if li != lj {
			return li < lj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Clone 深拷贝节点及其子树
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make(map[string]*Node, len(n.Children))
		for name, child := range n.Children {
			c.Children[name] = child.Clone()
		}
	}
	return &c
}

// CountNodes 子树中的文件与文件夹数量（包含自身）
func (n *Node) CountNodes() (files, folders int) {
	if n == nil {
		return 0, 0
	}
	if n.IsFile() {
		return 1, 0
	}
	folders = 1
	for _, c := range n.Children {
		f, d := c.CountNodes()
		files += f
		folders += d
	}
	return files, folders
}

func (n *Node) touch() {
	n.UpdatedAt = now()
}

// normalize 修复从外部加载的节点：类型、名称与键一致、语言
func (n *Node) normalize(key string) {
	if key != "" {
		n.Name = key
	}
	if n.Type == "" {
		if n.Children != nil {
			n.Type = TypeFolder
		} else {
			n.Type = TypeFile
		}
	}
	if n.IsFile() {
		n.Children = nil
		if n.Language == "" {
			n.Language = DetectLanguage(n.Name)
		}
		return
	}
	n.Content = ""
	n.Language = ""
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	for k, c := range n.Children {
		if c == nil {
			delete(n.Children, k)
			continue
		}
		c.IsRoot = false
		c.normalize(k)
	}
}
