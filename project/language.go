package project

import (
	"path/filepath"

	"github.com/sjzsdu/speak/helper"
)

// DetectLanguage 根据文件名推断编辑器语言，未知扩展名返回 plaintext
func DetectLanguage(name string) string {
	if l := helper.GetLanguageFromExtension(filepath.Ext(name)); l != "" {
		return l
	}
	return DefaultLanguage
}
