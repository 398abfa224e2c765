package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/helper/json"
	"github.com/sjzsdu/speak/project"
)

// JSONStore 每个用户两个 JSON 文件：files/<user>.json 与 settings/<user>.json
type JSONStore struct {
	files    *json.Dir
	settings *json.Dir
}

// NewJSONStore 在 dir 下创建存储
func NewJSONStore(dir string) (*JSONStore, error) {
	files, err := json.OpenDir(dir, "files")
	if err != nil {
		return nil, err
	}
	settings, err := json.OpenDir(dir, "settings")
	if err != nil {
		return nil, err
	}
	return &JSONStore{files: files, settings: settings}, nil
}

func (s *JSONStore) LoadFileSystem(_ context.Context, user string) (*project.FileSystem, error) {
	key, err := userKey(user)
	if err != nil {
		return nil, err
	}
	data, err := s.files.Load(key)
	if errors.Is(err, json.ErrNotExist) {
		return project.DefaultFileSystem(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeFileSystem(data)
}

func (s *JSONStore) SaveFileSystem(_ context.Context, user string, fs *project.FileSystem) error {
	key, err := userKey(user)
	if err != nil {
		return err
	}
	data, err := encodeFileSystem(fs)
	if err != nil {
		return err
	}
	return s.files.Save(key, data)
}

func (s *JSONStore) ResetFileSystem(_ context.Context, user string) (*project.FileSystem, error) {
	key, err := userKey(user)
	if err != nil {
		return nil, err
	}
	if err := s.files.Remove(key); err != nil {
		return nil, fmt.Errorf("reset %s: %w", key, err)
	}
	return project.DefaultFileSystem(), nil
}

func (s *JSONStore) LoadSettings(_ context.Context, user string) (config.Settings, error) {
	key, err := userKey(user)
	if err != nil {
		return config.DefaultSettings(), err
	}
	data, err := s.settings.Load(key)
	if errors.Is(err, json.ErrNotExist) {
		return config.DefaultSettings(), nil
	}
	if err != nil {
		return config.DefaultSettings(), err
	}
	return decodeSettings(data)
}

func (s *JSONStore) SaveSettings(_ context.Context, user string, settings config.Settings) error {
	key, err := userKey(user)
	if err != nil {
		return err
	}
	return s.settings.Save(key, settings)
}

func (s *JSONStore) Close() error { return nil }
