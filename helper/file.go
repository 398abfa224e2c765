package helper

import (
	"os"
	"path/filepath"

	"github.com/sjzsdu/speak/share"
)

// GetPath 返回 ~/.speak 下的路径，name 为空时返回目录本身
func GetPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	if name == "" {
		return filepath.Join(home, share.PATH)
	}
	return filepath.Join(home, share.PATH, name)
}

// WriteFile 写文件，必要时创建父目录
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IsHidden 以点开头的文件或目录
func IsHidden(name string) bool {
	base := filepath.Base(name)
	return len(base) > 1 && base[0] == '.' && base != ".."
}
