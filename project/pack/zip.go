package pack

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sjzsdu/speak/project"
)

// maxEntrySize 单个导入文件的上限
const maxEntrySize = 8 << 20

// ExportZip 每个根目录作为 zip 中的顶层目录
func ExportZip(w io.Writer, fs *project.FileSystem) error {
	zw := zip.NewWriter(w)
	for _, r := range fs.Roots {
		if err := addNode(zw, r.Name, r); err != nil {
			return err
		}
	}
	return zw.Close()
}

// ExportNodeZip 打包单个节点，文件夹本身作为顶层目录
func ExportNodeZip(w io.Writer, n *project.Node) error {
	zw := zip.NewWriter(w)
	if err := addNode(zw, n.Name, n); err != nil {
		return err
	}
	return zw.Close()
}

func addNode(zw *zip.Writer, name string, n *project.Node) error {
	if n.IsFile() {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = io.WriteString(f, n.Content)
		return err
	}
	children := n.SortedChildren()
	if len(children) == 0 {
		_, err := zw.Create(name + "/")
		return err
	}
	for _, c := range children {
		if err := addNode(zw, name+"/"+c.Name, c); err != nil {
			return err
		}
	}
	return nil
}

// ImportZip 读取 zip 为名为 name 的文件夹。所有条目位于同一顶层目录时使用该目录
func ImportZip(r io.ReaderAt, size int64, name string) (*project.Node, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		key := strings.TrimPrefix(filepath.ToSlash(f.Name), "/")
		if key == "" || strings.Contains(key, "../") || strings.HasPrefix(key, "__MACOSX/") {
			continue
		}
		if f.FileInfo().IsDir() {
			files[strings.TrimSuffix(key, "/")+"/"] = ""
			continue
		}
		if f.UncompressedSize64 > maxEntrySize {
			return nil, fmt.Errorf("zip entry %s too large", key)
		}
		content, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		files[key] = content
	}
	if len(files) == 0 {
		return nil, ErrEmptyArchive
	}

	if top, ok := commonTop(files); ok {
		stripped := make(map[string]string, len(files))
		for k, v := range files {
			if rest := strings.TrimPrefix(k, top+"/"); rest != "" {
				stripped[rest] = v
			}
		}
		files, name = stripped, top
	}
	return project.Unflatten(name, files), nil
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	return string(data), nil
}

func commonTop(files map[string]string) (string, bool) {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	top := ""
	for _, k := range keys {
		i := strings.Index(k, "/")
		if i <= 0 {
			return "", false
		}
		if top == "" {
			top = k[:i]
		} else if k[:i] != top {
			return "", false
		}
	}
	return top, top != ""
}

// ImportZipFile 按文件名去掉扩展名作为项目名
func ImportZipFile(path string) (*project.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ImportZip(f, info.Size(), name)
}

// SaveNode 把节点写到 dir：文件原样写出，文件夹打包为 <name>.zip。返回写出的路径
func SaveNode(dir string, n *project.Node) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if n.IsFile() {
		path := filepath.Join(dir, n.Name)
		return path, os.WriteFile(path, []byte(n.Content), 0o644)
	}
	path := filepath.Join(dir, FileName(n.Name, ".zip"))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return path, ExportNodeZip(f, n)
}
