package project

import (
	"time"
)

// NodeType 节点类型
type NodeType string

const (
	TypeFile   NodeType = "file"
	TypeFolder NodeType = "folder"
)

// DefaultLanguage 无法识别扩展名时的语言
const DefaultLanguage = "plaintext"

// Node 文件树中的一个文件或文件夹
type Node struct {
	Type      NodeType         `json:"type"`
	Name      string           `json:"name"`
	Content   string           `json:"content,omitempty"`
	Language  string           `json:"language,omitempty"`
	Children  map[string]*Node `json:"children,omitempty"`
	IsRoot    bool             `json:"isRoot,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// FileSystem 某一时刻的完整文件树快照，可以包含多个根目录
//
// 快照按约定不可变：所有修改函数都会先深拷贝，再在拷贝上修改并返回新快照。
type FileSystem struct {
	Roots []*Node
}

// VisitorFunc 遍历回调，返回 SkipChildren 跳过当前目录的子节点
type VisitorFunc func(path Path, node *Node, depth int) error

// now 可在测试中替换
var now = time.Now
