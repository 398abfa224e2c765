package project

import "strings"

// PathSeparator 路径分隔符，节点名中不允许出现
const PathSeparator = "/"

// Path 从某个根目录开始的名称序列，第一个元素为根目录名
type Path []string

// ParsePath 解析 "root/dir/file" 形式的路径，忽略空段
func ParsePath(s string) Path {
	parts := strings.Split(s, PathSeparator)
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p = append(p, part)
	}
	return p
}

func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}

// Base 最后一段，空路径返回空串
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent 父路径，根目录及空路径返回 nil
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return append(Path(nil), p[:len(p)-1]...)
}

// Join 返回追加一段后的新路径，不会修改 p
func (p Path) Join(name string) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, name)
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix p 是否等于 prefix 或位于其下
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// IsRoot 是否指向根目录
func (p Path) IsRoot() bool {
	return len(p) == 1
}
