package voice

import (
	"regexp"
	"strconv"
	"strings"
)

// Extractor 从匹配结果中取参数，m 为 Pattern 的子匹配
type Extractor func(text string, m []string) Params

// Rule 规则表中的一行：按顺序尝试，第一个匹配的规则生效
type Rule struct {
	Intent  Intent
	Pattern *regexp.Regexp
	Extract Extractor
}

const nameToken = `([\w.\-]+)`

var (
	nameAfterKeyword = regexp.MustCompile(`\b(?:file|folder)\s+(?:(?:called|named)\s+)?` + nameToken)
	folderWord       = regexp.MustCompile(`\bfolder\b`)
	firstNumber      = regexp.MustCompile(`\d+`)
	spaces           = regexp.MustCompile(`\s+`)
)

// ExtractName 取 "file"/"folder" 之后的名称
func ExtractName(text string) string {
	m := nameAfterKeyword.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimRight(m[1], ".")
}

// ExtractNumber 取第一个整数，没有时返回 0
func ExtractNumber(text string) int {
	s := firstNumber.FindString(text)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func mentionsFolder(text string) bool {
	return folderWord.MatchString(text)
}

func rx(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

func noParams(string, []string) Params { return Params{} }

func nameParams(text string, _ []string) Params {
	return Params{Name: ExtractName(text), Folder: mentionsFolder(text)}
}

func lineParams(text string, _ []string) Params {
	return Params{Line: ExtractNumber(text)}
}

// trimDot 语音转写常在末尾带句号
func trimDot(s string) string {
	return strings.TrimRight(s, ".")
}

// rules 顺序即优先级：更具体的多词模式必须排在通用模式之前
var rules = []Rule{
	// "make util.js under src" 必须先于 "create file"
	{IntentCreateInFolder, rx(`\bmake\s+(?:(file|folder)\s+)?` + nameToken + `\s+(?:under|in|inside)\s+(?:(?:the\s+)?folder\s+)?` + nameToken), func(_ string, m []string) Params {
		return Params{Name: trimDot(m[2]), Parent: trimDot(m[3]), Folder: m[1] == "folder"}
	}},
	{IntentCreateInFolder, rx(`\bmake\b.*\bunder\b`), noParams},

	{IntentNewFile, rx(`\bnew\s+file\b`), nameParams},
	{IntentNewFolder, rx(`\bnew\s+folder\b`), nameParams},
	{IntentCreateFile, rx(`\bcreate\s+(?:a\s+)?(?:new\s+)?file\b`), nameParams},
	{IntentCreateFolder, rx(`\bcreate\s+(?:a\s+)?(?:new\s+)?folder\b`), nameParams},

	// 只认句首的 save，"delete file save.js" 里的 save 是名称
	{IntentSaveFile, rx(`^(?:please\s+)?save(?:\s+(?:the\s+|this\s+|my\s+)?(?:file|changes|it|all|everything))?[.!]?$`), noParams},
	{IntentCloseAllTabs, rx(`\bclose\s+all\b`), noParams},
	{IntentCloseTab, rx(`\bclose\s+(?:(?:this|the|current)\s+)?(?:file|tab)\b`), noParams},
	{IntentOpenFile, rx(`\bopen\s+(?:the\s+)?file\b`), nameParams},

	{IntentRenameItem, rx(`\brename\s+(?:it\s+|this\s+|selection\s+|selected\s+)?to\s+` + nameToken), func(_ string, m []string) Params {
		return Params{NewName: trimDot(m[1])}
	}},
	{IntentRenameItem, rx(`\brename\s+(?:(file|folder)\s+)?` + nameToken + `\s+to\s+` + nameToken), func(_ string, m []string) Params {
		return Params{Name: trimDot(m[2]), NewName: trimDot(m[3]), Folder: m[1] == "folder"}
	}},
	{IntentRenameItem, rx(`\brename\b`), noParams},

	// 行编辑要先于按名称删除与复制
	{IntentDuplicateLine, rx(`\b(?:duplicate\s+(?:the\s+)?line|copy\s+(?:the\s+)?line\s+down)\b`), noParams},
	{IntentDeleteLine, rx(`\b(?:delete|remove)\s+(?:the\s+|this\s+)?line\b`), noParams},
	{IntentMoveLineUp, rx(`\bmove\s+(?:the\s+|this\s+)?line\s+up\b`), noParams},
	{IntentMoveLineDown, rx(`\bmove\s+(?:the\s+|this\s+)?line\s+down\b`), noParams},

	{IntentCopyItem, rx(`\bcopy\s+(?:file|folder)\b`), nameParams},
	{IntentCutItem, rx(`\bcut\s+(?:file|folder)\b`), nameParams},
	{IntentPasteItem, rx(`\bpaste\s+(?:file|folder)\b(?:\s+(?:into|in|to|under)\s+(?:folder\s+)?` + nameToken + `)?`), func(_ string, m []string) Params {
		return Params{Parent: trimDot(m[1])}
	}},
	{IntentPasteItem, rx(`\bpaste\s+(?:it\s+)?(?:into|in|under)\s+(?:(?:the\s+)?folder\s+)?` + nameToken), func(_ string, m []string) Params {
		return Params{Parent: trimDot(m[1])}
	}},
	{IntentSelectItem, rx(`\bselect\s+(?:file|folder)\b`), nameParams},
	{IntentDeleteItem, rx(`\b(?:delete|remove)\b`), nameParams},
	{IntentDownloadItem, rx(`\bdownload\b`), nameParams},
	{IntentListFiles, rx(`\b(?:list|show)\s+(?:all\s+|the\s+)?files\b`), noParams},

	{IntentNextTab, rx(`\bnext\s+tab\b`), noParams},
	{IntentPrevTab, rx(`\b(?:previous|prev)\s+tab\b`), noParams},
	{IntentFirstTab, rx(`\bfirst\s+tab\b`), noParams},
	{IntentLastTab, rx(`\blast\s+tab\b`), noParams},
	{IntentToggleLineNumbers, rx(`\b(?:toggle|show|hide)\s+(?:the\s+)?line\s+numbers\b`), noParams},
	{IntentGoToLine, rx(`\b(?:go\s*to|jump\s+to)\s+line\b`), lineParams},
	{IntentScrollTop, rx(`\b(?:scroll|go)\s+to\s+(?:the\s+)?top\b`), noParams},
	{IntentScrollBottom, rx(`\b(?:scroll|go)\s+to\s+(?:the\s+)?bottom\b`), noParams},
	{IntentSelectAll, rx(`\bselect\s+all\b`), noParams},

	{IntentFindNext, rx(`\bfind\s+next\b`), noParams},
	{IntentFindPrevious, rx(`\bfind\s+prev(?:ious)?\b`), noParams},
	{IntentReplace, rx(`\breplace\b(?:\s+(\S+)\s+with\s+(\S+))?`), func(_ string, m []string) Params {
		return Params{Name: m[1], NewName: m[2]}
	}},
	{IntentFind, rx(`\b(?:find|search)\b(?:\s+(?:for\s+)?(.+))?`), func(_ string, m []string) Params {
		return Params{Name: strings.TrimSpace(m[1])}
	}},

	{IntentCopy, rx(`\bcopy\b`), noParams},
	{IntentPaste, rx(`\bpaste\b`), noParams},
	{IntentCut, rx(`\bcut\b`), noParams},
	{IntentUndo, rx(`\bundo\b`), noParams},
	{IntentRedo, rx(`\bredo\b`), noParams},
	{IntentFormat, rx(`\bformat\b`), noParams},
	{IntentComment, rx(`\b(?:un)?comment\b`), noParams},
	{IntentOutdent, rx(`\b(?:outdent|unindent|dedent)\b`), noParams},
	{IntentIndent, rx(`\bindent\b`), noParams},

	{IntentToggleSidebar, rx(`\b(?:toggle|show|hide)\s+(?:the\s+)?(?:sidebar|explorer)\b`), noParams},
	{IntentToggleMinimap, rx(`\b(?:toggle|show|hide)\s+(?:the\s+)?minimap\b`), noParams},
	{IntentToggleWordWrap, rx(`\bword\s*wrap\b`), noParams},
	{IntentResetZoom, rx(`\breset\s+(?:the\s+)?(?:zoom|font(?:\s+size)?)\b`), noParams},
	{IntentZoomIn, rx(`\b(?:zoom\s+in|increase\s+(?:the\s+)?font(?:\s+size)?|bigger\s+font)\b`), noParams},
	{IntentZoomOut, rx(`\b(?:zoom\s+out|decrease\s+(?:the\s+)?font(?:\s+size)?|smaller\s+font)\b`), noParams},
	{IntentHighContrast, rx(`\bhigh\s+contrast\b`), noParams},
	{IntentDarkTheme, rx(`\bdark\s+(?:theme|mode)\b`), noParams},
	{IntentLightTheme, rx(`\blight\s+(?:theme|mode)\b`), noParams},

	{IntentImport, rx(`\bimport\b`), noParams},
	{IntentExport, rx(`\bexport\b`), noParams},
	{IntentLogout, rx(`\b(?:log\s*out|sign\s+out)\b`), noParams},
	{IntentHelp, rx(`\bhelp\b|\bwhat\s+can\s+i\s+say\b`), noParams},
	{IntentResetSettings, rx(`\breset\s+(?:all\s+)?settings\b`), noParams},
	{IntentOpenSettings, rx(`\bsettings\b|\bpreferences\b`), noParams},
	{IntentTypingOn, rx(`\b(?:typing\s+on|start\s+typing|enable\s+typing|start\s+dictation)\b`), noParams},
	{IntentTypingOff, rx(`\b(?:typing\s+off|stop\s+typing|disable\s+typing|stop\s+dictation)\b`), noParams},
	{IntentStopListening, rx(`\bstop\s+listening\b`), noParams},
}

// Rules 返回规则表副本，顺序即优先级
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Normalize 小写、去掉首尾空白并合并连续空白
func Normalize(utterance string) string {
	return spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(utterance)), " ")
}

// Classify 把一句话映射到意图与参数，无法识别时返回 IntentUnknown
func Classify(utterance string) Command {
	text := Normalize(utterance)
	if text == "" {
		return Command{Intent: IntentUnknown, Raw: text}
	}
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return Command{Intent: r.Intent, Params: r.Extract(text, m), Raw: text}
	}
	return Command{Intent: IntentUnknown, Raw: text}
}
