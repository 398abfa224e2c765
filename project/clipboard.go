package project

// ClipAction 剪贴板动作
type ClipAction string

const (
	ClipCopy ClipAction = "copy"
	ClipCut  ClipAction = "cut"
)

// Clipboard 单槽剪贴板，保存节点的深拷贝与来源路径
type Clipboard struct {
	Path   Path
	Node   *Node
	Action ClipAction
}

// Copy 复制到剪贴板，不修改文件树
func Copy(p Path, n *Node) *Clipboard {
	return &Clipboard{Path: append(Path(nil), p...), Node: n.Clone(), Action: ClipCopy}
}

// Cut 剪切到剪贴板，源节点在粘贴时才删除并移动
func Cut(p Path, n *Node) *Clipboard {
	return &Clipboard{Path: append(Path(nil), p...), Node: n.Clone(), Action: ClipCut}
}

// Empty nil 或没有内容
func (c *Clipboard) Empty() bool {
	return c == nil || c.Node == nil
}

// Under 来源路径是否位于 p 之下（含 p 本身）
func (c *Clipboard) Under(p Path) bool {
	return !c.Empty() && c.Path.HasPrefix(p)
}

// Retarget from 改名为 to 之后的剪贴板。来源不在 from 之下时原样返回；
// 来源正是 from 时节点名随之改变，文件重新推断语言。
func (c *Clipboard) Retarget(from, to Path) *Clipboard {
	if !c.Under(from) {
		return c
	}
	next := &Clipboard{
		Path:   append(append(Path(nil), to...), c.Path[len(from):]...),
		Node:   c.Node,
		Action: c.Action,
	}
	if len(c.Path) == len(from) {
		next.Node = c.Node.Clone()
		next.Node.Name = to.Base()
		if next.Node.IsFile() {
			next.Node.Language = DetectLanguage(next.Node.Name)
		}
	}
	return next
}

// Paste 把剪贴板内容粘贴到 target 文件夹，返回新快照、最终名称以及粘贴后的剪贴板。
// 复制粘贴后剪贴板保持不变，可重复粘贴；剪切粘贴会删除源节点并清空剪贴板。
func Paste(fs *FileSystem, clip *Clipboard, target Path) (*FileSystem, string, *Clipboard, error) {
	if clip.Empty() {
		return nil, "", clip, pathErr("paste", target, ErrRejected)
	}
	if _, err := ResolveFolder(fs, target); err != nil {
		return nil, "", clip, pathErr("paste", target, ErrRejected)
	}
	if clip.Action == ClipCut && clip.Node.IsFolder() && target.HasPrefix(clip.Path) {
		// 不能把文件夹剪切到自己的子树里
		return nil, "", clip, pathErr("paste", target, ErrRejected)
	}

	next := fs.Clone()
	node := clip.Node.Clone()
	node.IsRoot = false
	t := now()

	if clip.Action == ClipCut {
		if src, err := Resolve(next, clip.Path); err == nil {
			// 剪切后源节点可能又被编辑过，移动的是当前的源节点
			node = src.Clone()
			node.IsRoot = false
			if clip.Path.IsRoot() {
				i := next.rootIndex(clip.Path[0])
				next.Roots = append(next.Roots[:i], next.Roots[i+1:]...)
			} else {
				parent, _ := Resolve(next, clip.Path.Parent())
				parent.RemoveChild(clip.Path.Base())
				parent.touch()
			}
		}
	} else {
		node.CreatedAt = t
	}

	dir, err := ResolveFolder(next, target)
	if err != nil {
		return nil, "", clip, pathErr("paste", target, ErrRejected)
	}
	node.Name = uniqueName(dir.Children, node.Name, node.Type)
	node.UpdatedAt = t
	dir.AddChild(node)
	dir.touch()

	if clip.Action == ClipCut {
		return next, node.Name, nil, nil
	}
	return next, node.Name, clip, nil
}
