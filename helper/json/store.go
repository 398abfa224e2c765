package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotExist 文档不存在
var ErrNotExist = errors.New("json document does not exist")

const ext = ".json"

// Dir 一个目录下的 JSON 文档集合，每个文档一个文件
type Dir struct {
	Path string
}

// OpenDir 打开 base/sub，不存在时创建
func OpenDir(base, sub string) (*Dir, error) {
	path := filepath.Join(base, sub)
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("创建目录失败 %s: %w", path, err)
	}
	return &Dir{Path: path}, nil
}

func (d *Dir) file(name string) string {
	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return filepath.Join(d.Path, name)
}

// Load 读取原始文档
func (d *Dir) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(d.file(name))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	case err != nil:
		return nil, fmt.Errorf("读取 %s 失败: %w", name, err)
	}
	return data, nil
}

// Decode 读取并解码到 v
func (d *Dir) Decode(name string, v any) error {
	data, err := d.Load(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("解析 %s 失败: %w", name, err)
	}
	return nil
}

// Save 写入文档。doc 为 []byte 时须是合法 JSON，其余值缩进编码。
// 先写临时文件再改名，读者不会看到写了一半的文档。
func (d *Dir) Save(name string, doc any) error {
	data, ok := doc.([]byte)
	if ok && !json.Valid(data) {
		return fmt.Errorf("%s: 不是合法的 JSON", name)
	}
	if !ok {
		var err error
		if data, err = json.MarshalIndent(doc, "", "  "); err != nil {
			return fmt.Errorf("编码 %s 失败: %w", name, err)
		}
	}

	tmp, err := os.CreateTemp(d.Path, ".tmp-*")
	if err != nil {
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	return os.Rename(tmp.Name(), d.file(name))
}

// Remove 删除文档，不存在时不报错
func (d *Dir) Remove(name string) error {
	if err := os.Remove(d.file(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除 %s 失败: %w", name, err)
	}
	return nil
}

// Has 文档是否存在
func (d *Dir) Has(name string) bool {
	_, err := os.Stat(d.file(name))
	return err == nil
}

// Names 按字母序列出文档名（不带扩展名）
func (d *Dir) Names() ([]string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败 %s: %w", d.Path, err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	sort.Strings(names)
	return names, nil
}
