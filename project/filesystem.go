package project

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NewFileSystem 由若干根目录组成快照
func NewFileSystem(roots ...*Node) *FileSystem {
	fs := &FileSystem{}
	for _, r := range roots {
		r.IsRoot = true
		fs.Roots = append(fs.Roots, r)
	}
	return fs
}

// Clone 深拷贝整个快照
func (fs *FileSystem) Clone() *FileSystem {
	if fs == nil {
		return &FileSystem{}
	}
	c := &FileSystem{Roots: make([]*Node, 0, len(fs.Roots))}
	for _, r := range fs.Roots {
		c.Roots = append(c.Roots, r.Clone())
	}
	return c
}

// Empty 没有任何根目录
func (fs *FileSystem) Empty() bool {
	return fs == nil || len(fs.Roots) == 0
}

// Root 按名称查找根目录
func (fs *FileSystem) Root(name string) *Node {
	if fs == nil {
		return nil
	}
	for _, r := range fs.Roots {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// FirstRoot 第一个根目录的路径，没有根目录时返回 nil
func (fs *FileSystem) FirstRoot() Path {
	if fs.Empty() {
		return nil
	}
	return Path{fs.Roots[0].Name}
}

func (fs *FileSystem) rootIndex(name string) int {
	for i, r := range fs.Roots {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func (fs *FileSystem) rootNames() map[string]*Node {
	m := make(map[string]*Node, len(fs.Roots))
	for _, r := range fs.Roots {
		m[r.Name] = r
	}
	return m
}

// MarshalJSON 以 {"roots": {...}} 输出，保持根目录顺序
func (fs *FileSystem) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"roots":{`)
	if fs != nil {
		for i, r := range fs.Roots {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(r.Name)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(r)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON 同时接受 {"roots": {...}} 与旧版 {"root": {...}}，
// 加载后统一为多根形式
func (fs *FileSystem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Roots json.RawMessage `json:"roots"`
		Root  *Node           `json:"root"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fs.Roots = nil
	if len(raw.Roots) > 0 && !bytes.Equal(bytes.TrimSpace(raw.Roots), []byte("null")) {
		roots, err := decodeOrderedRoots(raw.Roots)
		if err != nil {
			return err
		}
		fs.Roots = roots
	} else if raw.Root != nil {
		fs.Roots = []*Node{raw.Root}
	}
	fs.Normalize()
	return nil
}

func decodeOrderedRoots(data []byte) ([]*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("roots: expected object, got %v", tok)
	}
	var roots []*Node
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var n Node
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("roots[%s]: %w", key, err)
		}
		if key != "" {
			n.Name = key
		}
		roots = append(roots, &n)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return roots, nil
}

// Normalize 修复快照中的不一致：根目录标记、子节点名称与键、缺失的类型与语言、
// 同名根目录
func (fs *FileSystem) Normalize() {
	seen := make(map[string]bool, len(fs.Roots))
	kept := fs.Roots[:0]
	for _, r := range fs.Roots {
		if r == nil || r.Name == "" || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		r.normalize("")
		if !r.IsFolder() {
			// 根只能是文件夹，把散落的文件包起来
			f := NewFolder(r.Name)
			f.CreatedAt, f.UpdatedAt = r.CreatedAt, r.UpdatedAt
			r.IsRoot = false
			f.AddChild(r)
			r = f
		}
		r.IsRoot = true
		kept = append(kept, r)
	}
	fs.Roots = kept
}

// DefaultFileSystem 新会话的示例项目
func DefaultFileSystem() *FileSystem {
	root := NewFolder("My Project")
	src := NewFolder("src")
	components := NewFolder("components")

	src.AddChild(NewFile("index.js", "// Welcome to the voice-controlled editor\n"+
		"// Try saying \"create file app.js\" or \"go to line 3\"\n\n"+
		"function greet(name) {\n"+
		"  return `Hello, ${name}!`;\n"+
		"}\n\n"+
		"console.log(greet(\"World\"));\n"))
	components.AddChild(NewFile("Editor.jsx", "export default function Editor() {\n"+
		"  return <div className=\"editor\" />;\n"+
		"}\n"))
	src.AddChild(components)
	root.AddChild(src)
	root.AddChild(NewFile("README.md", "# My Project\n\nSay \"help\" to list the available voice commands.\n"))

	return NewFileSystem(root)
}
