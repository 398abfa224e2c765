package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sjzsdu/speak/config"
	"github.com/sjzsdu/speak/project"
)

const redisPrefix = "speak:"

// RedisStore 键为 speak:files:<user> 与 speak:settings:<user>
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 连接 addr 并检查连通性
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func filesKey(user string) string    { return redisPrefix + "files:" + user }
func settingsKey(user string) string { return redisPrefix + "settings:" + user }

func (s *RedisStore) LoadFileSystem(ctx context.Context, user string) (*project.FileSystem, error) {
	key, err := userKey(user)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, filesKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return project.DefaultFileSystem(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load file system for %s: %w", key, err)
	}
	return decodeFileSystem(data)
}

func (s *RedisStore) SaveFileSystem(ctx context.Context, user string, fs *project.FileSystem) error {
	key, err := userKey(user)
	if err != nil {
		return err
	}
	data, err := encodeFileSystem(fs)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, filesKey(key), data, 0).Err()
}

func (s *RedisStore) ResetFileSystem(ctx context.Context, user string) (*project.FileSystem, error) {
	key, err := userKey(user)
	if err != nil {
		return nil, err
	}
	if err := s.client.Del(ctx, filesKey(key)).Err(); err != nil {
		return nil, fmt.Errorf("reset %s: %w", key, err)
	}
	return project.DefaultFileSystem(), nil
}

func (s *RedisStore) LoadSettings(ctx context.Context, user string) (config.Settings, error) {
	key, err := userKey(user)
	if err != nil {
		return config.DefaultSettings(), err
	}
	data, err := s.client.Get(ctx, settingsKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return config.DefaultSettings(), nil
	}
	if err != nil {
		return config.DefaultSettings(), fmt.Errorf("load settings for %s: %w", key, err)
	}
	return decodeSettings(data)
}

func (s *RedisStore) SaveSettings(ctx context.Context, user string, settings config.Settings) error {
	key, err := userKey(user)
	if err != nil {
		return err
	}
	data, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, settingsKey(key), data, 0).Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }
