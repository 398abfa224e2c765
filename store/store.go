// Package store 按用户持久化文件快照与编辑器设置
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/project"
	"github.com/sjzsdu/speak/share"
)

var (
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrInvalidUser    = errors.New("invalid user")
)

// Store 持久化后端。没有数据时返回默认项目结构与默认设置。
type Store interface {
	LoadFileSystem(ctx context.Context, user string) (*project.FileSystem, error)
	SaveFileSystem(ctx context.Context, user string, fs *project.FileSystem) error
	// ResetFileSystem 删除用户数据并返回默认项目结构
	ResetFileSystem(ctx context.Context, user string) (*project.FileSystem, error)
	LoadSettings(ctx context.Context, user string) (config.Settings, error)
	SaveSettings(ctx context.Context, user string, s config.Settings) error
	Close() error
}

// Open 按运行时配置打开后端
func Open(rt config.Runtime) (Store, error) {
	switch rt.Store {
	case "", "json":
		dir := rt.StoreDSN
		if dir == "" {
			dir = helper.GetPath("")
		}
		return NewJSONStore(dir)
	case "sqlite":
		dsn := rt.StoreDSN
		if dsn == "" {
			dsn = helper.GetPath("speak.db")
		}
		return NewSQLiteStore(dsn)
	case "redis":
		return NewRedisStore(rt.RedisAddr)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, rt.Store)
}

// userKey 空用户使用默认用户；用户名会出现在文件名与键名中，不允许路径字符
func userKey(user string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return share.DEFAULT_USER, nil
	}
	if strings.ContainsAny(user, `/\:`) || user == "." || user == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidUser, user)
	}
	return user, nil
}

func encodeFileSystem(fs *project.FileSystem) ([]byte, error) {
	if fs == nil {
		fs = project.NewFileSystem()
	}
	return json.Marshal(fs)
}

// decodeFileSystem 解码并规范化快照
func decodeFileSystem(data []byte) (*project.FileSystem, error) {
	fs := &project.FileSystem{}
	if err := json.Unmarshal(data, fs); err != nil {
		return nil, fmt.Errorf("decode file system: %w", err)
	}
	return fs, nil
}

// decodeSettings 缺失的键取默认值
func decodeSettings(data []byte) (config.Settings, error) {
	s := config.DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return config.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return config.DefaultSettings(), err
	}
	return s, nil
}

func encodeSettings(s config.Settings) ([]byte, error) {
	return json.Marshal(s)
}
