package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// 主题
const (
	ThemeDark         = "dark"
	ThemeLight        = "light"
	ThemeHighContrast = "high-contrast"
)

// 字号范围，缩放指令每次调整一个像素
const (
	MinFontSize     = 10
	MaxFontSize     = 30
	DefaultFontSize = 14
)

// ErrInvalidSetting 设置值不合法
var ErrInvalidSetting = errors.New("invalid setting")

// Settings 编辑器会话设置，键名与持久化格式保持一致
type Settings struct {
	Theme               string  `json:"theme" yaml:"theme"`
	FontSize            int     `json:"fontSize" yaml:"fontSize"`
	FontFamily          string  `json:"fontFamily" yaml:"fontFamily"`
	TabSize             int     `json:"tabSize" yaml:"tabSize"`
	LineHeight          float64 `json:"lineHeight" yaml:"lineHeight"`
	CursorStyle         string  `json:"cursorStyle" yaml:"cursorStyle"`
	WordWrap            bool    `json:"wordWrap" yaml:"wordWrap"`
	LineNumbers         bool    `json:"lineNumbers" yaml:"lineNumbers"`
	MinimapEnabled      bool    `json:"minimapEnabled" yaml:"minimapEnabled"`
	AutoSave            bool    `json:"autoSave" yaml:"autoSave"`
	AutoSaveInterval    int     `json:"autoSaveInterval" yaml:"autoSaveInterval"`
	FormatOnSave        bool    `json:"formatOnSave" yaml:"formatOnSave"`
	AutoCloseBrackets   bool    `json:"autoCloseBrackets" yaml:"autoCloseBrackets"`
	VoiceLanguage       string  `json:"voiceLanguage" yaml:"voiceLanguage"`
	VoiceSensitivity    float64 `json:"voiceSensitivity" yaml:"voiceSensitivity"`
	ContinuousListening bool    `json:"continuousListening" yaml:"continuousListening"`
	VoiceFeedback       bool    `json:"voiceFeedback" yaml:"voiceFeedback"`
	SortBy              string  `json:"sortBy" yaml:"sortBy"`
	ShowHiddenFiles     bool    `json:"showHiddenFiles" yaml:"showHiddenFiles"`
	CompactFolders      bool    `json:"compactFolders" yaml:"compactFolders"`
	ConfirmBeforeDelete bool    `json:"confirmBeforeDelete" yaml:"confirmBeforeDelete"`
	AutoReveal          bool    `json:"autoReveal" yaml:"autoReveal"`
	SmoothScroll        bool    `json:"smoothScroll" yaml:"smoothScroll"`
}

// DefaultSettings 新用户与重置后的设置
func DefaultSettings() Settings {
	return Settings{
		Theme:               ThemeDark,
		FontSize:            DefaultFontSize,
		FontFamily:          "Consolas",
		TabSize:             2,
		LineHeight:          1.5,
		CursorStyle:         "line",
		WordWrap:            true,
		LineNumbers:         true,
		MinimapEnabled:      true,
		AutoSave:            false,
		AutoSaveInterval:    5000,
		FormatOnSave:        false,
		AutoCloseBrackets:   true,
		VoiceLanguage:       "en-US",
		VoiceSensitivity:    0.7,
		ContinuousListening: true,
		VoiceFeedback:       true,
		SortBy:              "name",
		ShowHiddenFiles:     false,
		CompactFolders:      false,
		ConfirmBeforeDelete: true,
		AutoReveal:          true,
		SmoothScroll:        true,
	}
}

var (
	themes       = []string{ThemeDark, ThemeLight, ThemeHighContrast}
	cursorStyles = []string{"line", "block", "underline", "line-thin", "block-outline", "underline-thin"}
	sortOrders   = []string{"name", "type", "modified"}
)

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

func invalid(key string, v any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidSetting, key, v)
}

// Validate 检查取值范围
func (s Settings) Validate() error {
	switch {
	case !oneOf(s.Theme, themes):
		return invalid("theme", s.Theme)
	case s.FontSize < MinFontSize || s.FontSize > MaxFontSize:
		return invalid("fontSize", s.FontSize)
	case strings.TrimSpace(s.FontFamily) == "":
		return invalid("fontFamily", s.FontFamily)
	case s.TabSize < 1 || s.TabSize > 8:
		return invalid("tabSize", s.TabSize)
	case s.LineHeight < 1 || s.LineHeight > 3:
		return invalid("lineHeight", s.LineHeight)
	case !oneOf(s.CursorStyle, cursorStyles):
		return invalid("cursorStyle", s.CursorStyle)
	case s.AutoSaveInterval < 1000:
		return invalid("autoSaveInterval", s.AutoSaveInterval)
	case strings.TrimSpace(s.VoiceLanguage) == "":
		return invalid("voiceLanguage", s.VoiceLanguage)
	case s.VoiceSensitivity < 0 || s.VoiceSensitivity > 1:
		return invalid("voiceSensitivity", s.VoiceSensitivity)
	case !oneOf(s.SortBy, sortOrders):
		return invalid("sortBy", s.SortBy)
	}
	return nil
}

// ClampFontSize 把字号限制在允许范围内
func ClampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// Merge 以部分键值更新设置，未知键被忽略，结果不合法时返回错误且不修改 s
func (s Settings) Merge(patch map[string]any) (Settings, error) {
	base, err := json.Marshal(s)
	if err != nil {
		return s, err
	}
	var current map[string]any
	if err := json.Unmarshal(base, &current); err != nil {
		return s, err
	}
	for k, v := range patch {
		if _, known := current[k]; known {
			current[k] = v
		}
	}
	merged, err := json.Marshal(current)
	if err != nil {
		return s, err
	}
	var out Settings
	if err := json.Unmarshal(merged, &out); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	if err := out.Validate(); err != nil {
		return s, err
	}
	return out, nil
}

// LoadSettingsFile 从 YAML 文件读取设置，文件不存在时返回默认值。
// 文件中缺失的键保留默认值。
func LoadSettingsFile(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// SaveSettingsFile 写入 YAML 文件
func SaveSettingsFile(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
