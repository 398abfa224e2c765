package config

import "sort"

// ConfigKeyInfo 存储配置键的相关信息
type ConfigKeyInfo struct {
	Description string   // 配置项描述
	Options     []string // 可选值，如果为空则表示没有限制
	Type        string   // 配置项类型，默认为 "string"，可以是 "secret" 等
}

// 配置键常量定义
const (
	KeyLang       = "lang"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
	KeyStore      = "store"
	KeyStoreDSN   = "store_dsn"
	KeyRedisAddr  = "redis_addr"
	KeyUser       = "user"
	KeyHTTPAddr   = "http_addr"
	KeyTranscript = "transcript"
)

// ConfigKeys 存储所有配置键及其信息
var ConfigKeys = map[string]ConfigKeyInfo{
	KeyLang: {
		Description: "Set language",
		Options:     []string{"en", "zh-CN"},
		Type:        "string",
	},
	KeyLogLevel: {
		Description: "Set log level",
		Options:     []string{"debug", "info", "warn", "error"},
		Type:        "string",
	},
	KeyLogFormat: {
		Description: "Set log format",
		Options:     []string{"console", "json"},
		Type:        "string",
	},
	KeyStore: {
		Description: "Set storage backend",
		Options:     []string{"json", "sqlite", "redis"},
		Type:        "string",
	},
	KeyStoreDSN: {
		Description: "Set storage location (directory for json, database file for sqlite)",
		Type:        "string",
	},
	KeyRedisAddr: {
		Description: "Set redis address",
		Type:        "string",
	},
	KeyUser: {
		Description: "Set user name used as the storage key",
		Type:        "string",
	},
	KeyHTTPAddr: {
		Description: "Set HTTP listen address",
		Type:        "string",
	},
	KeyTranscript: {
		Description: "Set transcript file to listen on",
		Type:        "string",
	},
}

// GetConfigDescription 获取配置键的描述
func GetConfigDescription(key string) string {
	if info, exists := ConfigKeys[key]; exists {
		return info.Description
	}
	return ""
}

// GetConfigOptions 获取配置键的可选值
func GetConfigOptions(key string) []string {
	if info, exists := ConfigKeys[key]; exists {
		return info.Options
	}
	return nil
}

// GetConfigType 获取配置键的类型
func GetConfigType(key string) string {
	if info, exists := ConfigKeys[key]; exists && info.Type != "" {
		return info.Type
	}
	return "string"
}

// IsValidConfigOption 检查给定的值是否是配置键的有效选项
func IsValidConfigOption(key, value string) bool {
	options := GetConfigOptions(key)
	if len(options) == 0 {
		return true
	}
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

// GetAllConfigKeys 获取所有配置键，按名称排序
func GetAllConfigKeys() []string {
	keys := make([]string, 0, len(ConfigKeys))
	for key := range ConfigKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
