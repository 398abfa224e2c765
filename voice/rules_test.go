package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		utterance string
		intent    Intent
		params    Params
	}{
		{"make util.js under src", IntentCreateInFolder, Params{Name: "util.js", Parent: "src"}},
		{"make folder hooks under src", IntentCreateInFolder, Params{Name: "hooks", Parent: "src", Folder: true}},
		{"make file a.js inside the folder lib.", IntentCreateInFolder, Params{Name: "a.js", Parent: "lib"}},
		{"make under the sea", IntentCreateInFolder, Params{}},
		{"create file index.js", IntentCreateFile, Params{Name: "index.js"}},
		{"Create File Called Notes.TXT", IntentCreateFile, Params{Name: "notes.txt"}},
		{"create folder utils", IntentCreateFolder, Params{Name: "utils", Folder: true}},
		{"new file", IntentNewFile, Params{}},
		{"new folder", IntentNewFolder, Params{Folder: true}},
		{"save", IntentSaveFile, Params{}},
		{"please save the file", IntentSaveFile, Params{}},
		{"save changes.", IntentSaveFile, Params{}},
		{"delete file save.js", IntentDeleteItem, Params{Name: "save.js"}},
		{"rename save.js to store.js", IntentRenameItem, Params{Name: "save.js", NewName: "store.js"}},
		{"copy file save.txt", IntentCopyItem, Params{Name: "save.txt"}},
		{"close all tabs", IntentCloseAllTabs, Params{}},
		{"close tab", IntentCloseTab, Params{}},
		{"open file app.js.", IntentOpenFile, Params{Name: "app.js"}},
		{"rename to main.js", IntentRenameItem, Params{NewName: "main.js"}},
		{"rename file a.js to b.js", IntentRenameItem, Params{Name: "a.js", NewName: "b.js"}},
		{"rename", IntentRenameItem, Params{}},
		{"delete line", IntentDeleteLine, Params{}},
		{"delete file notes.txt", IntentDeleteItem, Params{Name: "notes.txt"}},
		{"delete folder lib", IntentDeleteItem, Params{Name: "lib", Folder: true}},
		{"delete", IntentDeleteItem, Params{}},
		{"copy file a.js", IntentCopyItem, Params{Name: "a.js"}},
		{"copy line down", IntentDuplicateLine, Params{}},
		{"copy", IntentCopy, Params{}},
		{"cut folder lib", IntentCutItem, Params{Name: "lib", Folder: true}},
		{"paste into src", IntentPasteItem, Params{Parent: "src"}},
		{"paste file into folder lib", IntentPasteItem, Params{Parent: "lib"}},
		{"paste", IntentPaste, Params{}},
		{"select file readme.md", IntentSelectItem, Params{Name: "readme.md"}},
		{"select all", IntentSelectAll, Params{}},
		{"download file app.js", IntentDownloadItem, Params{Name: "app.js"}},
		{"list files", IntentListFiles, Params{}},
		{"next tab", IntentNextTab, Params{}},
		{"previous tab", IntentPrevTab, Params{}},
		{"go to line 42", IntentGoToLine, Params{Line: 42}},
		{"goto line", IntentGoToLine, Params{}},
		{"scroll to the top", IntentScrollTop, Params{}},
		{"scroll to bottom", IntentScrollBottom, Params{}},
		{"find next", IntentFindNext, Params{}},
		{"find previous", IntentFindPrevious, Params{}},
		{"search for main", IntentFind, Params{Name: "main"}},
		{"replace foo with bar", IntentReplace, Params{Name: "foo", NewName: "bar"}},
		{"uncomment", IntentComment, Params{}},
		{"unindent", IntentOutdent, Params{}},
		{"indent", IntentIndent, Params{}},
		{"hide the sidebar", IntentToggleSidebar, Params{}},
		{"toggle line numbers", IntentToggleLineNumbers, Params{}},
		{"word wrap", IntentToggleWordWrap, Params{}},
		{"zoom in", IntentZoomIn, Params{}},
		{"decrease font size", IntentZoomOut, Params{}},
		{"reset zoom", IntentResetZoom, Params{}},
		{"high contrast", IntentHighContrast, Params{}},
		{"dark mode", IntentDarkTheme, Params{}},
		{"light theme", IntentLightTheme, Params{}},
		{"import", IntentImport, Params{}},
		{"export project", IntentExport, Params{}},
		{"log out", IntentLogout, Params{}},
		{"what can i say", IntentHelp, Params{}},
		{"reset settings", IntentResetSettings, Params{}},
		{"open settings", IntentOpenSettings, Params{}},
		{"typing on", IntentTypingOn, Params{}},
		{"stop typing", IntentTypingOff, Params{}},
		{"stop listening", IntentStopListening, Params{}},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			cmd := Classify(tt.utterance)
			assert.Equal(t, tt.intent, cmd.Intent)
			assert.Equal(t, tt.params, cmd.Params)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, u := range []string{"", "   ", "banana", "copying is fun", "saved games", "reopen", "save the whales"} {
		cmd := Classify(u)
		assert.Equal(t, IntentUnknown, cmd.Intent, u)
	}
}

func TestClassifyNormalizesRaw(t *testing.T) {
	cmd := Classify("  Go   To\tLine 7 ")
	assert.Equal(t, "go to line 7", cmd.Raw)
	assert.Equal(t, 7, cmd.Params.Line)
}

func TestRulesOrdering(t *testing.T) {
	rs := Rules()
	index := func(i Intent) int {
		for n, r := range rs {
			if r.Intent == i {
				return n
			}
		}
		return -1
	}
	assert.Less(t, index(IntentCreateInFolder), index(IntentCreateFile))
	assert.Less(t, index(IntentDeleteLine), index(IntentDeleteItem))
	assert.Less(t, index(IntentCopyItem), index(IntentCopy))
	assert.Less(t, index(IntentPasteItem), index(IntentPaste))
	assert.Less(t, index(IntentFindNext), index(IntentFind))

	// save 排在按名称操作的规则之前，只能匹配整句
	assert.Less(t, index(IntentSaveFile), index(IntentRenameItem))
	for _, u := range []string{"delete file save.js", "select file save.md", "download file save.zip"} {
		assert.NotEqual(t, IntentSaveFile, Classify(u).Intent, u)
	}

	rs[0].Intent = IntentUnknown
	assert.Equal(t, IntentCreateInFolder, Rules()[0].Intent)
}

func TestExtractHelpers(t *testing.T) {
	assert.Equal(t, "app.js", ExtractName("open the file app.js"))
	assert.Equal(t, "x", ExtractName("folder named x"))
	assert.Equal(t, "", ExtractName("open it"))
	assert.Equal(t, 12, ExtractNumber("line 12 and 13"))
	assert.Equal(t, 0, ExtractNumber("no digits"))
}
