package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, ThemeDark, s.Theme)
	assert.Equal(t, 14, s.FontSize)
	assert.Equal(t, 5000, s.AutoSaveInterval)
	assert.True(t, s.ConfirmBeforeDelete)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"主题", func(s *Settings) { s.Theme = "solarized" }},
		{"字号过小", func(s *Settings) { s.FontSize = 9 }},
		{"字号过大", func(s *Settings) { s.FontSize = 31 }},
		{"缩进", func(s *Settings) { s.TabSize = 0 }},
		{"行高", func(s *Settings) { s.LineHeight = 4 }},
		{"光标", func(s *Settings) { s.CursorStyle = "beam" }},
		{"自动保存间隔", func(s *Settings) { s.AutoSaveInterval = 10 }},
		{"灵敏度", func(s *Settings) { s.VoiceSensitivity = 1.5 }},
		{"排序", func(s *Settings) { s.SortBy = "size" }},
		{"语言", func(s *Settings) { s.VoiceLanguage = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSetting)
		})
	}
}

func TestSettingsMerge(t *testing.T) {
	s := DefaultSettings()

	merged, err := s.Merge(map[string]any{"theme": "light", "fontSize": float64(18), "unknownKey": true})
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, merged.Theme)
	assert.Equal(t, 18, merged.FontSize)
	assert.Equal(t, ThemeDark, s.Theme, "原值不变")

	_, err = s.Merge(map[string]any{"fontSize": 99})
	assert.ErrorIs(t, err, ErrInvalidSetting)
	_, err = s.Merge(map[string]any{"fontSize": "big"})
	assert.ErrorIs(t, err, ErrInvalidSetting)
}

func TestClampFontSize(t *testing.T) {
	assert.Equal(t, 10, ClampFontSize(3))
	assert.Equal(t, 30, ClampFontSize(31))
	assert.Equal(t, 15, ClampFontSize(15))
}

func TestSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	s.Theme = ThemeHighContrast
	s.TabSize = 4
	require.NoError(t, SaveSettingsFile(path, s))

	loaded, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	require.NoError(t, os.WriteFile(path, []byte("fontSize: 20\n"), 0644))
	partial, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, partial.FontSize)
	assert.Equal(t, "Consolas", partial.FontFamily, "缺失的键保留默认值")

	require.NoError(t, os.WriteFile(path, []byte("fontSize: [\n"), 0644))
	_, err = LoadSettingsFile(path)
	assert.Error(t, err)

	bad := DefaultSettings()
	bad.Theme = "nope"
	assert.Error(t, SaveSettingsFile(path, bad))
}
