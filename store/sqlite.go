package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/project"
	_ "modernc.org/sqlite"
)

// SQLiteStore 两张表，以用户名为主键
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore 打开数据库并建表，path 可以是 ":memory:"
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = abs
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS file_systems (
			user TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			user TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate sqlite db: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) load(ctx context.Context, table, user string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM `+table+` WHERE user = ?`, user).Scan(&data)
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *SQLiteStore) save(ctx context.Context, table, user string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (user, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		user, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save %s for %s: %w", table, user, err)
	}
	return nil
}

func (s *SQLiteStore) LoadFileSystem(ctx context.Context, user string) (*project.FileSystem, error) {
	key, err := userKey(user)
	if err != nil {
		return nil, err
	}
	data, err := s.load(ctx, "file_systems", key)
	if errors.Is(err, sql.ErrNoRows) {
		return project.DefaultFileSystem(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load file system for %s: %w", key, err)
	}
	return decodeFileSystem(data)
}

func (s *SQLiteStore) SaveFileSystem(ctx context.Context, user string, fs *project.FileSystem) error {
	key, err := userKey(user)
	if err != nil {
		return err
	}
	data, err := encodeFileSystem(fs)
	if err != nil {
		return err
	}
	return s.save(ctx, "file_systems", key, data)
}

func (s *SQLiteStore) ResetFileSystem(ctx context.Context, user string) (*project.FileSystem, error) {
	key, err := userKey(user)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM file_systems WHERE user = ?`, key); err != nil {
		return nil, fmt.Errorf("reset %s: %w", key, err)
	}
	return project.DefaultFileSystem(), nil
}

func (s *SQLiteStore) LoadSettings(ctx context.Context, user string) (config.Settings, error) {
	key, err := userKey(user)
	if err != nil {
		return config.DefaultSettings(), err
	}
	data, err := s.load(ctx, "settings", key)
	if errors.Is(err, sql.ErrNoRows) {
		return config.DefaultSettings(), nil
	}
	if err != nil {
		return config.DefaultSettings(), fmt.Errorf("load settings for %s: %w", key, err)
	}
	return decodeSettings(data)
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, user string, settings config.Settings) error {
	key, err := userKey(user)
	if err != nil {
		return err
	}
	data, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	return s.save(ctx, "settings", key, data)
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
