package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/share"
)

var (
	mu        sync.RWMutex
	configMap = make(map[string]string)
)

func init() {
	// 配置文件中的值只补充尚未设置的环境变量
	if err := LoadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
	}
}

// GetConfig 读取配置，key 可以是简短键（lang）或完整环境变量名（SPEAK_LANG）
func GetConfig(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if !strings.HasPrefix(key, share.PREFIX) {
		return os.Getenv(GetEnvKey(key))
	}
	return ""
}

func GetConfigWithDefault(key string, defaultValue string) string {
	value := GetConfig(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// ConfigFile 配置文件路径
func ConfigFile() string {
	return helper.GetPath("config")
}

// LoadConfig 读取 ~/.speak/config 中的 KEY=VALUE 行
func LoadConfig() error {
	file, err := os.Open(ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	mu.Lock()
	defer mu.Unlock()
	configMap = make(map[string]string)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		configMap[key] = value
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}

// SaveConfig 按键名排序写回配置文件
func SaveConfig() error {
	mu.RLock()
	keys := make([]string, 0, len(configMap))
	for key := range configMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, configMap[key])
	}
	mu.RUnlock()

	path := ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0600)
}

func GetEnvKey(flagKey string) string {
	return share.PREFIX + strings.ToUpper(flagKey)
}

// SetConfig 设置配置值并更新环境变量
func SetConfig(key, value string) {
	if !strings.HasPrefix(key, share.PREFIX) {
		key = GetEnvKey(key)
	}
	mu.Lock()
	configMap[key] = value
	mu.Unlock()
	os.Setenv(key, value)
}

// ClearConfig 清除指定配置
func ClearConfig(key string) {
	if !strings.HasPrefix(key, share.PREFIX) {
		key = GetEnvKey(key)
	}
	mu.Lock()
	delete(configMap, key)
	mu.Unlock()
	os.Unsetenv(key)
}

// ClearAllConfig 清除所有配置
func ClearAllConfig() {
	mu.Lock()
	defer mu.Unlock()
	for key := range configMap {
		os.Unsetenv(key)
	}
	configMap = make(map[string]string)
}

// GetConfigMap 当前配置文件中的键值副本
func GetConfigMap() map[string]string {
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]string, len(configMap))
	for k, v := range configMap {
		out[k] = v
	}
	return out
}

// Runtime 命令运行时使用的配置
type Runtime struct {
	Lang       string
	LogLevel   string
	LogFormat  string
	Store      string
	StoreDSN   string
	RedisAddr  string
	User       string
	HTTPAddr   string
	Transcript string
}

// CurrentRuntime 从环境变量与配置文件汇总运行时配置
func CurrentRuntime() Runtime {
	return Runtime{
		Lang:       GetConfigWithDefault(KeyLang, "en"),
		LogLevel:   GetConfigWithDefault(KeyLogLevel, "info"),
		LogFormat:  GetConfigWithDefault(KeyLogFormat, "console"),
		Store:      GetConfigWithDefault(KeyStore, share.DEFAULT_STORE),
		StoreDSN:   GetConfig(KeyStoreDSN),
		RedisAddr:  GetConfigWithDefault(KeyRedisAddr, "localhost:6379"),
		User:       GetConfigWithDefault(KeyUser, share.DEFAULT_USER),
		HTTPAddr:   GetConfigWithDefault(KeyHTTPAddr, share.DEFAULT_HTTP_ADDR),
		Transcript: GetConfig(KeyTranscript),
	}
}
