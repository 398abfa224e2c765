package share

import "sync/atomic"

var debug atomic.Bool

// SetDebug 设置全局调试模式
func SetDebug(on bool) {
	debug.Store(on)
}

// GetDebug 是否处于调试模式
func GetDebug() bool {
	return debug.Load()
}
