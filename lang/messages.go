package lang

import "golang.org/x/text/language"

var supported = []language.Tag{language.English, language.SimplifiedChinese}

// catalogue 以英文原文为消息 ID
var catalogue = map[language.Tag]map[string]string{
	language.SimplifiedChinese: {
		// 语音反馈
		"%d files: %s":                             "%d 个文件：%s",
		"%s disabled":                              "%s 已关闭",
		"%s enabled":                               "%s 已开启",
		"%s failed: %v":                            "%s 失败：%v",
		"%s has unsaved changes. Close anyway?":    "%s 有未保存的修改，仍要关闭吗？",
		"%s is not available":                      "%s 不可用",
		"A sibling named %s already exists":        "同一目录下已存在 %s",
		"All tabs closed":                          "已关闭所有标签",
		"Are you sure you want to log out?":        "确定要退出登录吗？",
		"Cannot paste %s here":                     "无法在此处粘贴 %s",
		"Close cancelled":                          "已取消关闭",
		"Command failed: %v":                       "指令执行失败：%v",
		"Copied: %s":                               "已复制：%s",
		"Created %s in %s":                         "已在 %[2]s 中创建 %[1]s",
		"Created %s":                               "已创建 %s",
		"Created file: %s":                         "已创建文件：%s",
		"Created folder %s in %s":                  "已在 %[2]s 中创建文件夹 %[1]s",
		"Created folder: %s":                       "已创建文件夹：%s",
		"Cut: %s":                                  "已剪切：%s",
		"Delete cancelled":                         "已取消删除",
		"Deleted: %s":                              "已删除：%s",
		"Download failed: %s":                      "下载失败：%s",
		"Downloading %s":                           "正在下载 %s",
		"File closed":                              "文件已关闭",
		"File not found: %s":                       "找不到文件：%s",
		"Font size: %dpx":                          "字号：%dpx",
		"Invalid name: %s":                         "名称无效：%s",
		"Jumped to line %d":                        "已跳转到第 %d 行",
		"Logging out...":                           "正在退出登录...",
		"Logout cancelled":                         "已取消退出登录",
		"No file to save":                          "没有需要保存的文件",
		"No files yet":                             "还没有文件",
		"No open tabs":                             "没有打开的标签",
		"Not found: %s":                            "找不到：%s",
		"Nothing to paste. Copy or cut something first": "没有可粘贴的内容，请先复制或剪切",
		"Nothing to type":                          "没有可输入的内容",
		"Opened %s":                                "已打开 %s",
		"Pasted: %s":                               "已粘贴：%s",
		"Please create a folder first":             "请先创建文件夹",
		"Please select a file or folder first":     "请先选择文件或文件夹",
		"Please select a folder first":             "请先选择文件夹",
		"Please specify a file name":               "请说出文件名",
		"Please specify a folder name":             "请说出文件夹名",
		"Please specify a line number":             "请说出行号",
		"Renamed %s to %s":                         "已将 %s 重命名为 %s",
		"Saved %s":                                 "已保存 %s",
		"Scrolled to bottom":                       "已滚动到底部",
		"Scrolled to top":                          "已滚动到顶部",
		"Selected %s":                              "已选中 %s",
		"Settings reset to defaults":               "设置已恢复默认",
		"Sidebar hidden":                           "侧边栏已隐藏",
		"Sidebar shown":                            "侧边栏已显示",
		"Switched to %s":                           "已切换到 %s",
		"Typed: %s":                                "已输入：%s",
		"Typing mode off":                          "听写模式已关闭",
		"Typing mode on. Speech is inserted into the editor": "听写模式已开启，语音将直接输入到编辑器",
		"Voice control stopped":                    "语音控制已停止",
		"Zoom reset":                               "缩放已重置",
		`Delete "%s"?`:                             "删除“%s”？",
		`Folder "%s" not found`:                    "找不到文件夹“%s”",
		`Format: "make [folder] filename under foldername"`: "格式：“make [folder] 文件名 under 文件夹名”",
		`Say "help" in the app, or run "speak help-commands"`: "在应用中说“help”，或运行“speak help-commands”",
		`Say "rename <name> to <new name>"`:        "请说“rename <名称> to <新名称>”",
		`Unknown command: "%s"`:                    "无法识别的指令：“%s”",

		// 编辑器动作
		"Selected all":          "已全选",
		"Copied to clipboard":   "已复制到剪贴板",
		"Pasted from clipboard": "已从剪贴板粘贴",
		"Cut to clipboard":      "已剪切到剪贴板",
		"Undo":                  "撤销",
		"Redo":                  "重做",
		"Code formatted":        "代码已格式化",
		"Comment toggled":       "已切换注释",
		"Line duplicated":       "已复制当前行",
		"Line deleted":          "已删除当前行",
		"Line moved up":         "已上移当前行",
		"Line moved down":       "已下移当前行",
		"Indented":              "已缩进",
		"Outdented":             "已取消缩进",
		"Opening find":          "打开查找",
		"Opening replace":       "打开替换",
		"Next match":            "下一个匹配",
		"Previous match":        "上一个匹配",

		// 主题与外壳
		"Dark theme activated":          "已切换到深色主题",
		"Light theme activated":         "已切换到浅色主题",
		"High contrast theme activated": "已切换到高对比度主题",
		"Opening import dialog":         "打开导入对话框",
		"Opening export dialog":         "打开导出对话框",
		"Opening help":                  "打开帮助",
		"Opening settings":              "打开设置",

		// 能力名称
		"File system": "文件系统",
		"Tabs":        "标签页",
		"Clipboard":   "剪贴板",
		"Selection":   "选择",
		"Download":    "下载",
		"Editor":      "编辑器",
		"Sidebar":     "侧边栏",
		"Settings":    "设置",
		"Dialogs":     "对话框",
		"Session":     "会话",
		"Dictation":   "听写",
		"Microphone":  "麦克风",
		"Minimap":     "缩略图",
		"Word wrap":   "自动换行",
		"Line numbers": "行号",

		// 帮助
		"Voice commands": "语音指令",
		"Files":          "文件",
		"Navigation":     "导航",
		"Editing":        "编辑",
		"Search":         "搜索",
		"View":           "视图",

		// 命令行
		"Voice command interpreter for a code editor":                     "面向代码编辑器的语音指令解释器",
		"Turns spoken or typed phrases into file-tree and editor actions": "把说出或输入的短语转换为文件树与编辑器操作",
		"Invalid arguments":                          "无效参数",
		"Debug mode":                                 "调试模式",
		"User whose workspace is used":               "使用哪个用户的工作区",
		"Storage backend (json, sqlite, redis)":      "存储后端（json、sqlite、redis）",
		"Print version information":                  "打印版本信息",
		"speak version":                              "speak 版本",
		"Set config":                                 "设置配置",
		"Set global configuration":                   "设置全局配置",
		"List all configurations":                    "列出所有配置",
		"Remove configuration keys":                  "删除配置项",
		"Current configurations:":                    "当前配置：",
		"Configuration saved":                        "配置已保存",
		"Error saving config":                        "保存配置失败",
		"invalid value":                              "无效的值",
		"expected one of":                            "可选值为",
		"Set language":                               "设置语言",
		"Set log level":                              "设置日志级别",
		"Set log format":                             "设置日志格式",
		"Set storage backend":                        "设置存储后端",
		"Set redis address":                          "设置 Redis 地址",
		"Set user name used as the storage key":      "设置用作存储键的用户名",
		"Set HTTP listen address":                    "设置 HTTP 监听地址",
		"Set transcript file to listen on":           "设置监听的转写文件",
		"Type voice commands at a prompt":            "在提示符下输入语音指令",
		"Run voice commands non-interactively":       "非交互方式执行语音指令",
		"Listen continuously to a transcript file":   "持续监听转写文件",
		"Serve the HTTP API":                         "启动 HTTP 服务",
		"Show the file tree of the workspace":        "显示工作区文件树",
		"Export the workspace":                       "导出工作区",
		"Import files into the workspace":            "向工作区导入文件",
		"Reset the workspace to the default project": "把工作区恢复为默认项目",
		"Show or change editor settings":             "查看或修改编辑器设置",
		"List the commands you can say":              "列出可以说的指令",
		"Press Ctrl+V to dictate a longer text in vim": "按 Ctrl+V 在 vim 中输入较长的文本",
		"Type quit or exit to leave":                 "输入 quit 或 exit 退出",
		"Voice session ended, goodbye!":              "语音会话已结束，再见！",
		"Command dropped":                            "指令被丢弃",
		"Error reading vim":                          "读取 vim 输入失败",
		"Please enter y or n: ":                      "请输入 y 或 n：",
		"Microphone unavailable: %v":                 "麦克风不可用：%v",
		"Nothing to commit":                          "没有需要提交的内容",
		"Committed":                                  "已提交",
		"Imported":                                   "已导入",
		"Workspace replaced":                         "工作区已替换",
		"Workspace reset":                            "工作区已重置",
		"Reset cancelled":                            "已取消重置",
		"Settings saved":                             "设置已保存",
		"folders":                                    "个文件夹",
		"files":                                      "个文件",
		"unknown export format":                      "未知的导出格式",
		"expected key=value":                         "格式应为 key=value",
		"open store":                                 "打开存储",
		"All files will be replaced by the default project. Continue? (y/N) ": "所有文件将被替换为默认项目，继续吗？(y/N) ",
		"Speak is listening. Say \"help\" to see what you can say.":           "Speak 正在聆听，说 \"help\" 查看可用指令。",
		"MCP Server":                                          "MCP 服务",
		"MCP server (HTTP)":                                   "MCP 服务（HTTP）",
		"MCP server (SSE)":                                    "MCP 服务（SSE）",
		"MCP server (stdio) started, waiting for a client...": "MCP 服务（stdio）已启动，等待客户端连接...",
		"no transcript file given, pass one or set the transcript config key": "未指定转写文件，请传入路径或设置 transcript 配置项",
	},
}
