// Package voice 把转写后的语音指令分类为意图，并分派到文件树、编辑器与宿主能力上
package voice

// Intent 语音指令的意图
type Intent string

// 文件操作
const (
	IntentCreateInFolder Intent = "create_in_folder"
	IntentNewFile        Intent = "new_file"
	IntentNewFolder      Intent = "new_folder"
	IntentCreateFile     Intent = "create_file"
	IntentCreateFolder   Intent = "create_folder"
	IntentSaveFile       Intent = "save_file"
	IntentOpenFile       Intent = "open_file"
	IntentCloseTab       Intent = "close_tab"
	IntentCloseAllTabs   Intent = "close_all_tabs"
	IntentRenameItem     Intent = "rename_item"
	IntentDeleteItem     Intent = "delete_item"
	IntentCopyItem       Intent = "copy_item"
	IntentCutItem        Intent = "cut_item"
	IntentPasteItem      Intent = "paste_item"
	IntentSelectItem     Intent = "select_item"
	IntentDownloadItem   Intent = "download_item"
	IntentListFiles      Intent = "list_files"
)

// 导航
const (
	IntentNextTab      Intent = "next_tab"
	IntentPrevTab      Intent = "prev_tab"
	IntentFirstTab     Intent = "first_tab"
	IntentLastTab      Intent = "last_tab"
	IntentGoToLine     Intent = "go_to_line"
	IntentScrollTop    Intent = "scroll_top"
	IntentScrollBottom Intent = "scroll_bottom"
)

// 编辑
const (
	IntentSelectAll     Intent = "select_all"
	IntentCopy          Intent = "copy"
	IntentCut           Intent = "cut"
	IntentPaste         Intent = "paste"
	IntentUndo          Intent = "undo"
	IntentRedo          Intent = "redo"
	IntentFormat        Intent = "format"
	IntentComment       Intent = "comment"
	IntentDuplicateLine Intent = "duplicate_line"
	IntentDeleteLine    Intent = "delete_line"
	IntentMoveLineUp    Intent = "move_line_up"
	IntentMoveLineDown  Intent = "move_line_down"
	IntentIndent        Intent = "indent"
	IntentOutdent       Intent = "outdent"
)

// 搜索
const (
	IntentFind         Intent = "find"
	IntentReplace      Intent = "replace"
	IntentFindNext     Intent = "find_next"
	IntentFindPrevious Intent = "find_previous"
)

// 布局与主题
const (
	IntentToggleSidebar     Intent = "toggle_sidebar"
	IntentToggleMinimap     Intent = "toggle_minimap"
	IntentToggleWordWrap    Intent = "toggle_word_wrap"
	IntentToggleLineNumbers Intent = "toggle_line_numbers"
	IntentZoomIn            Intent = "zoom_in"
	IntentZoomOut           Intent = "zoom_out"
	IntentResetZoom         Intent = "reset_zoom"
	IntentDarkTheme         Intent = "dark_theme"
	IntentLightTheme        Intent = "light_theme"
	IntentHighContrast      Intent = "high_contrast_theme"
)

// 会话与其它
const (
	IntentImport        Intent = "import_project"
	IntentExport        Intent = "export_project"
	IntentLogout        Intent = "logout"
	IntentHelp          Intent = "help"
	IntentOpenSettings  Intent = "open_settings"
	IntentResetSettings Intent = "reset_settings"
	IntentTypingOn      Intent = "typing_on"
	IntentTypingOff     Intent = "typing_off"
	IntentStopListening Intent = "stop_listening"

	// IntentDictate 听写模式下的普通文本，不由规则表产生
	IntentDictate Intent = "dictate"
	IntentUnknown Intent = "unknown"
)

// Params 从指令中提取的参数
type Params struct {
	Name    string `json:"name,omitempty"`    // file/folder 之后的名称，或查找内容
	Parent  string `json:"parent,omitempty"`  // 目标文件夹名
	NewName string `json:"newName,omitempty"` // 重命名目标，或替换文本
	Line    int    `json:"line,omitempty"`    // 行号，未提及时为 0
	Folder  bool   `json:"folder,omitempty"`  // 指令明确说的是 folder
}

// Command 一次分类结果
type Command struct {
	Intent Intent `json:"intent"`
	Params Params `json:"params"`
	Raw    string `json:"raw"` // 规范化（小写、去空白）后的原始文本
}
