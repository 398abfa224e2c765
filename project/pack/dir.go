package pack

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/project"
)

// ReadOptions 读取磁盘目录的过滤条件
type ReadOptions struct {
	IncludeHidden bool
	MaxFileSize   int64
	Extensions    []string // 为空时读取所有文本文件
	Exclude       []string
}

// DefaultReadOptions 跳过隐藏文件与大于 1MB 的文件
func DefaultReadOptions() ReadOptions {
	return ReadOptions{MaxFileSize: 1 << 20}
}

// ReadDir 把磁盘目录读成文件夹节点，只保留文本文件
func ReadDir(dir string, opts ReadOptions) (*project.Node, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	root := project.NewFolder(filepath.Base(abs))
	return root, readInto(root, abs, opts)
}

func readInto(n *project.Node, dir string, opts ReadOptions) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if name == ".git" || (!opts.IncludeHidden && helper.IsHidden(name)) {
			continue
		}
		path := filepath.Join(dir, name)
		if e.IsDir() {
			child := project.NewFolder(name)
			if err := readInto(child, path, opts); err != nil {
				return err
			}
			n.AddChild(child)
			continue
		}
		if !e.Type().IsRegular() || !helper.ShouldIncludeFile(name, helper.IsHidden(name), &helper.FileFilterOptions{
			IncludeHidden: opts.IncludeHidden,
			IncludeExts:   opts.Extensions,
			ExcludeExts:   opts.Exclude,
		}) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return err
		}
		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !isText(data) {
			continue
		}
		n.AddChild(project.NewFile(name, string(data)))
	}
	return nil
}

func isText(data []byte) bool {
	return !bytes.ContainsRune(data, 0) && utf8.Valid(data)
}

// WriteDir 把节点写到 dir 下，文件夹成为同名子目录
func WriteDir(dir string, n *project.Node) error {
	path := filepath.Join(dir, n.Name)
	if n.IsFile() {
		return helper.WriteFile(path, []byte(n.Content))
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	for _, c := range n.SortedChildren() {
		if err := WriteDir(path, c); err != nil {
			return err
		}
	}
	return nil
}
