package share

import "time"

// VERSION 版本号
const VERSION = "0.3.0"

// BUILDNAME 制品名称
const BUILDNAME = "speak"

const PREFIX = "SPEAK_"

const PATH = ".speak"

// DEFAULT_USER 未指定用户时使用的存储键
const DEFAULT_USER = "default"

const DEFAULT_STORE = "json"

const DEFAULT_HTTP_ADDR = ":3001"

// NOTIFY_DISPLAY 单条通知展示时长
const NOTIFY_DISPLAY = time.Second

// NOTIFY_GAP 两条通知之间的间隔
const NOTIFY_GAP = 100 * time.Millisecond

const MCP_SERVER_NAME = "Speak MCP Server"

const EXPORT_VERSION = "1.0.0"
