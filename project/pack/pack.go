// Package pack 项目的导入导出：JSON、zip、磁盘目录、markdown 与 PDF 清单、git 提交
package pack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/share"
)

const defaultProjectName = "project"

var ErrEmptyArchive = errors.New("archive contains no files")

// Bundle JSON 导出格式
type Bundle struct {
	ProjectName string              `json:"projectName"`
	FileSystem  *project.FileSystem `json:"fileSystem"`
	ExportedAt  time.Time           `json:"exportedAt"`
	Version     string              `json:"version"`
}

// ProjectName 第一个根目录的名称
func ProjectName(fs *project.FileSystem) string {
	if fs.Empty() {
		return defaultProjectName
	}
	return fs.Roots[0].Name
}

// FileName 导出文件名，空白替换为下划线
func FileName(name, ext string) string {
	return strings.Join(strings.Fields(name), "_") + ext
}

// ExportJSON 写出带元数据的 JSON
func ExportJSON(w io.Writer, fs *project.FileSystem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Bundle{
		ProjectName: ProjectName(fs),
		FileSystem:  fs,
		ExportedAt:  time.Now().UTC(),
		Version:     share.EXPORT_VERSION,
	})
}

// ImportJSON 同时接受导出包与裸快照
func ImportJSON(r io.Reader) (*project.FileSystem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var probe struct {
		FileSystem json.RawMessage `json:"fileSystem"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("import json: %w", err)
	}
	if len(probe.FileSystem) > 0 && !bytes.Equal(probe.FileSystem, []byte("null")) {
		data = probe.FileSystem
	}
	fs := &project.FileSystem{}
	if err := json.Unmarshal(data, fs); err != nil {
		return nil, fmt.Errorf("import json: %w", err)
	}
	if fs.Empty() {
		return nil, ErrEmptyArchive
	}
	return fs, nil
}
