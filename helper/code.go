package helper

import (
	"path/filepath"
	"strings"
)

// languageByExt 扩展名到编辑器语言标识
var languageByExt = map[string]string{
	".js":         "javascript",
	".jsx":        "javascript",
	".mjs":        "javascript",
	".ts":         "typescript",
	".tsx":        "typescript",
	".html":       "html",
	".htm":        "html",
	".css":        "css",
	".scss":       "scss",
	".less":       "less",
	".py":         "python",
	".java":       "java",
	".cpp":        "cpp",
	".hpp":        "cpp",
	".c":          "c",
	".h":          "c",
	".cs":         "csharp",
	".json":       "json",
	".xml":        "xml",
	".md":         "markdown",
	".sql":        "sql",
	".php":        "php",
	".rb":         "ruby",
	".go":         "go",
	".rs":         "rust",
	".swift":      "swift",
	".kt":         "kotlin",
	".scala":      "scala",
	".sh":         "shell",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".ini":        "ini",
	".cfg":        "ini",
	".dockerfile": "dockerfile",
}

// GetLanguageFromExtension 根据扩展名（带点）返回语言标识，未知时返回空串
func GetLanguageFromExtension(ext string) string {
	return languageByExt[strings.ToLower(ext)]
}

// IsTextFile 判断是否为文本文件
func IsTextFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))

	// 没有扩展名的（Makefile、LICENSE）按文本处理
	if ext == "" {
		return true
	}
	if _, ok := languageByExt[ext]; ok {
		return true
	}

	textExtensions := map[string]bool{
		".txt": true, ".log": true, ".csv": true, ".env": true,
		".gitignore": true, ".gitattributes": true, ".editorconfig": true,
		".babelrc": true, ".eslintrc": true, ".prettierrc": true,
		".npmignore": true, ".yarnrc": true, ".vue": true, ".svg": true,
	}
	return textExtensions[ext]
}

// FileFilterOptions 导入本地目录时的过滤选项
type FileFilterOptions struct {
	IncludeHidden bool
	IncludeExts   []string
	ExcludeExts   []string
}

// ShouldIncludeFile 判断本地文件是否应该被导入
func ShouldIncludeFile(filename string, isHidden bool, options *FileFilterOptions) bool {
	if options == nil {
		options = &FileFilterOptions{}
	}
	if !options.IncludeHidden && isHidden {
		return false
	}
	if !IsTextFile(filename) {
		return false
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, excludeExt := range options.ExcludeExts {
		if normalizeExt(excludeExt) == ext {
			return false
		}
	}
	if len(options.IncludeExts) > 0 {
		for _, includeExt := range options.IncludeExts {
			if includeExt == "*" || normalizeExt(includeExt) == ext {
				return true
			}
		}
		return false
	}
	return true
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
