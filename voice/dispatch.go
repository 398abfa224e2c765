package voice

import (
	"context"
	"fmt"

	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/lang"
	"go.uber.org/zap"
)

// Searcher 可选能力：编辑器支持带参数的查找与替换
type Searcher interface {
	SetSearch(query, replacement string)
}

type dispatcher struct {
	ctx  context.Context
	cmd  Command
	caps Capabilities
}

// Dispatch 执行一条已分类的指令。无论成功与否都恰好发出一条通知，
// 失败时不会修改文件快照。
func Dispatch(ctx context.Context, cmd Command, caps Capabilities) (eff Effect) {
	d := &dispatcher{ctx: ctx, cmd: cmd, caps: caps}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("dispatch panic", logger.Intent(string(cmd.Intent)), zap.Any("panic", r))
			eff = failure(fmt.Sprintf(tr("Command failed: %v"), r), fmt.Errorf("panic: %v", r))
		}
		eff.Command = cmd
		d.report(eff)
	}()
	return d.route()
}

func (d *dispatcher) report(eff Effect) {
	fields := []zap.Field{
		logger.Intent(string(eff.Command.Intent)),
		logger.Utterance(eff.Command.Raw),
		zap.String("outcome", eff.Outcome()),
	}
	if eff.Err != nil {
		fields = append(fields, logger.Err(eff.Err))
	}
	logger.Debug("command dispatched", fields...)

	if d.caps.Notifier != nil {
		d.caps.Notifier.Notify(eff.Notification.Message, eff.Notification.Severity)
	}
}

func (d *dispatcher) route() Effect {
	p := d.cmd.Params
	switch d.cmd.Intent {
	case IntentCreateInFolder:
		return d.createInFolder(p)
	case IntentNewFile:
		return d.quickCreate(p, false)
	case IntentNewFolder:
		return d.quickCreate(p, true)
	case IntentCreateFile:
		return d.createFile(p)
	case IntentCreateFolder:
		return d.createFolder(p)
	case IntentSaveFile:
		return d.save()
	case IntentOpenFile:
		return d.open(p)
	case IntentCloseTab:
		return d.closeTab()
	case IntentCloseAllTabs:
		return d.closeAll()
	case IntentRenameItem:
		return d.rename(p)
	case IntentDeleteItem:
		return d.remove(p)
	case IntentCopyItem:
		return d.clip(p, false)
	case IntentCutItem:
		return d.clip(p, true)
	case IntentPasteItem:
		return d.paste(p)
	case IntentSelectItem:
		return d.selectItem(p)
	case IntentDownloadItem:
		return d.download(p)
	case IntentListFiles:
		return d.listFiles()

	case IntentNextTab, IntentPrevTab, IntentFirstTab, IntentLastTab:
		return d.switchTab(d.cmd.Intent)
	case IntentGoToLine:
		return d.goToLine(p.Line)
	case IntentScrollTop:
		return d.scroll(true)
	case IntentScrollBottom:
		return d.scroll(false)

	case IntentPaste:
		// 剪贴板里有文件时按文件粘贴，否则交给编辑器
		if d.caps.Clipboard != nil && !d.caps.Clipboard.Clipboard().Empty() {
			return d.paste(p)
		}
		return d.editor(d.cmd.Intent, p)

	case IntentToggleSidebar:
		return d.toggleSidebar()
	case IntentToggleMinimap, IntentToggleWordWrap, IntentToggleLineNumbers:
		return d.toggleSetting(d.cmd.Intent)
	case IntentZoomIn:
		return d.zoom(1)
	case IntentZoomOut:
		return d.zoom(-1)
	case IntentResetZoom:
		return d.zoom(0)
	case IntentDarkTheme, IntentLightTheme, IntentHighContrast:
		return d.theme(d.cmd.Intent)

	case IntentImport, IntentExport, IntentHelp, IntentOpenSettings:
		return d.shell(d.cmd.Intent)
	case IntentLogout:
		return d.logout()
	case IntentResetSettings:
		return d.resetSettings()
	case IntentTypingOn:
		return d.typing(true)
	case IntentTypingOff:
		return d.typing(false)
	case IntentStopListening:
		return d.stopListening()
	case IntentDictate:
		return d.dictate()
	}

	if _, ok := EditorAction(d.cmd.Intent); ok {
		return d.editor(d.cmd.Intent, p)
	}
	return warning(fmt.Sprintf(tr(`Unknown command: "%s"`), d.cmd.Raw), ErrUnknownCommand)
}

func tr(msg string) string { return lang.T(msg) }

func unavailable(what string) Effect {
	return warning(fmt.Sprintf(tr("%s is not available"), tr(what)), fmt.Errorf("%w: %s", ErrCapabilityUnavailable, what))
}

func (d *dispatcher) confirm(message string) bool {
	if d.caps.Shell == nil {
		return true
	}
	return d.caps.Shell.Confirm(d.ctx, message)
}
