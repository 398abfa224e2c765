// Package logger 基于 zap 的全局结构化日志
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu          sync.RWMutex
	globalLog   *zap.Logger
	globalLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Config 日志配置
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr 或文件路径
}

// Init 初始化全局日志
func Init(cfg Config) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	}

	globalLevel.SetLevel(level)
	zc.Level = globalLevel
	out := cfg.OutputPath
	if out == "" {
		out = "stderr"
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}

	l, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	mu.Lock()
	globalLog = l
	mu.Unlock()
	return nil
}

// Replace 直接替换全局 logger，测试中常配合 zaptest/observer 使用
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := globalLog
	globalLog = l
	mu.Unlock()
	return func() {
		mu.Lock()
		globalLog = prev
		mu.Unlock()
	}
}

// SetLevel 运行时调整日志级别
func SetLevel(level string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return
	}
	globalLevel.SetLevel(l)
}

// Level 当前日志级别
func Level() zapcore.Level {
	return globalLevel.Level()
}

// L 返回全局 logger，未初始化时返回 Nop
func L() *zap.Logger {
	mu.RLock()
	l := globalLog
	mu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// S 返回 sugared logger
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Sync 刷新缓冲
func Sync() error {
	mu.RLock()
	l := globalLog
	mu.RUnlock()
	if l == nil {
		return nil
	}
	return l.Sync()
}

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { L().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { L().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }

// 常用字段

func Intent(v string) zap.Field { return zap.String("intent", v) }

func Utterance(v string) zap.Field { return zap.String("utterance", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func User(v string) zap.Field { return zap.String("user", v) }

func Err(err error) zap.Field { return zap.Error(err) }

func Addr(v string) zap.Field { return zap.String("addr", v) }
