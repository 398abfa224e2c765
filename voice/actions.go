package voice

// 交给编辑器组件执行的动作名
const (
	ActionSelectAll        = "selectAll"
	ActionClipboardCopy    = "clipboardCopy"
	ActionClipboardPaste   = "clipboardPaste"
	ActionClipboardCut     = "clipboardCut"
	ActionUndo             = "undo"
	ActionRedo             = "redo"
	ActionFormatDocument   = "formatDocument"
	ActionCommentLine      = "commentLine"
	ActionCopyLinesDown    = "copyLinesDown"
	ActionDeleteLines      = "deleteLines"
	ActionMoveLinesUp      = "moveLinesUp"
	ActionMoveLinesDown    = "moveLinesDown"
	ActionIndentLines      = "indentLines"
	ActionOutdentLines     = "outdentLines"
	ActionFind             = "find"
	ActionStartFindReplace = "startFindReplace"
	ActionNextMatchFind    = "nextMatchFind"
	ActionPrevMatchFind    = "previousMatchFind"
)

// editorActions 纯编辑器意图到动作名的映射
var editorActions = map[Intent]string{
	IntentSelectAll:     ActionSelectAll,
	IntentCopy:          ActionClipboardCopy,
	IntentCut:           ActionClipboardCut,
	IntentPaste:         ActionClipboardPaste,
	IntentUndo:          ActionUndo,
	IntentRedo:          ActionRedo,
	IntentFormat:        ActionFormatDocument,
	IntentComment:       ActionCommentLine,
	IntentDuplicateLine: ActionCopyLinesDown,
	IntentDeleteLine:    ActionDeleteLines,
	IntentMoveLineUp:    ActionMoveLinesUp,
	IntentMoveLineDown:  ActionMoveLinesDown,
	IntentIndent:        ActionIndentLines,
	IntentOutdent:       ActionOutdentLines,
	IntentFind:          ActionFind,
	IntentReplace:       ActionStartFindReplace,
	IntentFindNext:      ActionNextMatchFind,
	IntentFindPrevious:  ActionPrevMatchFind,
}

// EditorAction 返回意图对应的编辑器动作名
func EditorAction(i Intent) (string, bool) {
	a, ok := editorActions[i]
	return a, ok
}
