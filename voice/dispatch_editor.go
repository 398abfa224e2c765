package voice

import (
	"errors"
	"fmt"

	"github.com/sjzsdu/speak/config"
)

// editorMessages 编辑器动作成功后的提示
var editorMessages = map[string]string{
	ActionSelectAll:        "Selected all",
	ActionClipboardCopy:    "Copied to clipboard",
	ActionClipboardPaste:   "Pasted from clipboard",
	ActionClipboardCut:     "Cut to clipboard",
	ActionUndo:             "Undo",
	ActionRedo:             "Redo",
	ActionFormatDocument:   "Code formatted",
	ActionCommentLine:      "Comment toggled",
	ActionCopyLinesDown:    "Line duplicated",
	ActionDeleteLines:      "Line deleted",
	ActionMoveLinesUp:      "Line moved up",
	ActionMoveLinesDown:    "Line moved down",
	ActionIndentLines:      "Indented",
	ActionOutdentLines:     "Outdented",
	ActionFind:             "Opening find",
	ActionStartFindReplace: "Opening replace",
	ActionNextMatchFind:    "Next match",
	ActionPrevMatchFind:    "Previous match",
}

func (d *dispatcher) editor(intent Intent, params Params) Effect {
	action, _ := EditorAction(intent)
	if d.caps.Editor == nil {
		return unavailable("Editor")
	}
	if s, ok := d.caps.Editor.(Searcher); ok && (intent == IntentFind || intent == IntentReplace) && params.Name != "" {
		s.SetSearch(params.Name, params.NewName)
	}
	if err := d.caps.Editor.Trigger(action); err != nil {
		return editorFailed(err, fmt.Sprintf(tr("%s failed: %v"), action, err))
	}
	eff := success(tr(editorMessages[action]))
	eff.Action = action
	return eff
}

// editorFailed 宿主报告没有可用编辑器时按能力缺失处理
func editorFailed(err error, msg string) Effect {
	if errors.Is(err, ErrCapabilityUnavailable) {
		return unavailable("Editor")
	}
	return failure(msg, err)
}

func (d *dispatcher) switchTab(intent Intent) Effect {
	if d.caps.Tabs == nil {
		return unavailable("Tabs")
	}
	var (
		tab Tab
		ok  bool
	)
	switch intent {
	case IntentNextTab:
		tab, ok = d.caps.Tabs.Next()
	case IntentPrevTab:
		tab, ok = d.caps.Tabs.Prev()
	case IntentFirstTab:
		tab, ok = d.caps.Tabs.First()
	default:
		tab, ok = d.caps.Tabs.Last()
	}
	if !ok {
		return info(tr("No open tabs"), nil)
	}
	if d.caps.Selection != nil {
		d.caps.Selection.Select(tab.Path)
	}
	return success(fmt.Sprintf(tr("Switched to %s"), tab.Name))
}

func (d *dispatcher) goToLine(line int) Effect {
	if line <= 0 {
		return warning(tr("Please specify a line number"), ErrMissingParam)
	}
	if d.caps.Editor == nil {
		return unavailable("Editor")
	}
	if last := d.caps.Editor.LineCount(); last > 0 && line > last {
		line = last
	}
	if err := d.caps.Editor.GoToLine(line); err != nil {
		return editorFailed(err, err.Error())
	}
	return success(fmt.Sprintf(tr("Jumped to line %d"), line))
}

func (d *dispatcher) scroll(top bool) Effect {
	if d.caps.Editor == nil {
		return unavailable("Editor")
	}
	line, msg := 1, tr("Scrolled to top")
	if !top {
		line, msg = max(d.caps.Editor.LineCount(), 1), tr("Scrolled to bottom")
	}
	if err := d.caps.Editor.GoToLine(line); err != nil {
		return editorFailed(err, err.Error())
	}
	return success(msg)
}

func (d *dispatcher) toggleSidebar() Effect {
	if d.caps.Shell == nil {
		return unavailable("Sidebar")
	}
	if d.caps.Shell.ToggleSidebar() {
		return success(tr("Sidebar shown"))
	}
	return success(tr("Sidebar hidden"))
}

func onOff(name string, on bool) string {
	if on {
		return fmt.Sprintf(tr("%s enabled"), tr(name))
	}
	return fmt.Sprintf(tr("%s disabled"), tr(name))
}

func (d *dispatcher) toggleSetting(intent Intent) Effect {
	if d.caps.Settings == nil {
		return unavailable("Settings")
	}
	s := d.caps.Settings.Settings()
	var msg string
	switch intent {
	case IntentToggleMinimap:
		s.MinimapEnabled = !s.MinimapEnabled
		msg = onOff("Minimap", s.MinimapEnabled)
	case IntentToggleWordWrap:
		s.WordWrap = !s.WordWrap
		msg = onOff("Word wrap", s.WordWrap)
	default:
		s.LineNumbers = !s.LineNumbers
		msg = onOff("Line numbers", s.LineNumbers)
	}
	d.caps.Settings.UpdateSettings(s)
	return success(msg)
}

// zoom delta 为 0 时恢复默认字号
func (d *dispatcher) zoom(delta int) Effect {
	if d.caps.Settings == nil {
		return unavailable("Settings")
	}
	s := d.caps.Settings.Settings()
	if delta == 0 {
		s.FontSize = config.DefaultFontSize
		d.caps.Settings.UpdateSettings(s)
		return success(tr("Zoom reset"))
	}
	size := config.ClampFontSize(s.FontSize + delta)
	if size == s.FontSize {
		return info(fmt.Sprintf(tr("Font size: %dpx"), size), nil)
	}
	s.FontSize = size
	d.caps.Settings.UpdateSettings(s)
	return success(fmt.Sprintf(tr("Font size: %dpx"), size))
}

func (d *dispatcher) theme(intent Intent) Effect {
	if d.caps.Settings == nil {
		return unavailable("Settings")
	}
	s := d.caps.Settings.Settings()
	msg := "Dark theme activated"
	switch intent {
	case IntentLightTheme:
		s.Theme, msg = config.ThemeLight, "Light theme activated"
	case IntentHighContrast:
		s.Theme, msg = config.ThemeHighContrast, "High contrast theme activated"
	default:
		s.Theme = config.ThemeDark
	}
	d.caps.Settings.UpdateSettings(s)
	return success(tr(msg))
}

func (d *dispatcher) resetSettings() Effect {
	if d.caps.Settings == nil {
		return unavailable("Settings")
	}
	d.caps.Settings.ResetSettings()
	return success(tr("Settings reset to defaults"))
}

func (d *dispatcher) shell(intent Intent) Effect {
	if d.caps.Shell == nil {
		if intent == IntentHelp {
			return info(tr(`Say "help" in the app, or run "speak help-commands"`), nil)
		}
		return unavailable("Dialogs")
	}
	var (
		err error
		msg string
	)
	switch intent {
	case IntentImport:
		err, msg = d.caps.Shell.OpenImport(), "Opening import dialog"
	case IntentExport:
		err, msg = d.caps.Shell.OpenExport(), "Opening export dialog"
	case IntentHelp:
		err, msg = d.caps.Shell.OpenHelp(), "Opening help"
	default:
		err, msg = d.caps.Shell.OpenSettings(), "Opening settings"
	}
	if err != nil {
		return failure(err.Error(), err)
	}
	return info(tr(msg), nil)
}

func (d *dispatcher) logout() Effect {
	if d.caps.Shell == nil {
		return unavailable("Session")
	}
	if !d.confirm(tr("Are you sure you want to log out?")) {
		return info(tr("Logout cancelled"), ErrCancelled)
	}
	if err := d.caps.Shell.Logout(); err != nil {
		return failure(err.Error(), err)
	}
	return info(tr("Logging out..."), nil)
}

func (d *dispatcher) typing(on bool) Effect {
	if d.caps.Dictation == nil {
		return unavailable("Dictation")
	}
	d.caps.Dictation.SetTyping(on)
	if on {
		return success(tr("Typing mode on. Speech is inserted into the editor"))
	}
	return success(tr("Typing mode off"))
}

func (d *dispatcher) stopListening() Effect {
	if d.caps.Shell == nil {
		return unavailable("Microphone")
	}
	d.caps.Shell.StopListening()
	return info(tr("Voice control stopped"), nil)
}

func (d *dispatcher) dictate() Effect {
	if d.caps.Editor == nil {
		return unavailable("Editor")
	}
	if d.cmd.Raw == "" {
		return info(tr("Nothing to type"), ErrMissingParam)
	}
	if err := d.caps.Editor.InsertText(d.cmd.Raw); err != nil {
		return editorFailed(err, err.Error())
	}
	return success(fmt.Sprintf(tr("Typed: %s"), d.cmd.Raw))
}
