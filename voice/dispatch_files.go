package voice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/project"
)

const listFilesLimit = 10

func (d *dispatcher) commit(eff Effect, next *project.FileSystem) Effect {
	d.caps.Files.Commit(next)
	eff.Snapshot = next
	return eff
}

func mutationFailed(err error, name string) Effect {
	switch {
	case errors.Is(err, project.ErrNameCollision):
		return failure(fmt.Sprintf(tr("A sibling named %s already exists"), name), err)
	case errors.Is(err, project.ErrInvalidName):
		return warning(fmt.Sprintf(tr("Invalid name: %s"), name), err)
	case errors.Is(err, project.ErrNotFound):
		return failure(fmt.Sprintf(tr("Not found: %s"), name), err)
	case errors.Is(err, project.ErrInvalidParent):
		return failure(tr("Please create a folder first"), err)
	case errors.Is(err, project.ErrRejected):
		return failure(fmt.Sprintf(tr("Cannot paste %s here"), name), err)
	}
	return failure(err.Error(), err)
}

// lookup 按名称查找，Folder 为 true 时只匹配文件夹
func (d *dispatcher) lookup(fs *project.FileSystem, name string, folder bool) (project.Path, *project.Node, *Effect) {
	var (
		p   project.Path
		n   *project.Node
		err error
	)
	if folder {
		p, n, err = project.FindFolderByName(fs, name)
	} else {
		p, n, err = project.FindByName(fs, name)
	}
	if err != nil {
		eff := failure(fmt.Sprintf(tr("File not found: %s"), name), err)
		if folder {
			eff = failure(fmt.Sprintf(tr(`Folder "%s" not found`), name), err)
		}
		return nil, nil, &eff
	}
	return p, n, nil
}

// target 指令中给出名称时按名称查找，否则使用当前选中项
func (d *dispatcher) target(fs *project.FileSystem, params Params) (project.Path, *project.Node, *Effect) {
	if params.Name != "" {
		return d.lookup(fs, params.Name, params.Folder)
	}
	if d.caps.Selection != nil {
		if p, ok := d.caps.Selection.Selected(); ok {
			if n, err := project.Resolve(fs, p); err == nil {
				return p, n, nil
			}
		}
	}
	eff := info(tr("Please select a file or folder first"), ErrNoSelection)
	return nil, nil, &eff
}

func (d *dispatcher) selectPath(p project.Path) {
	if d.caps.Selection != nil {
		d.caps.Selection.Select(p)
	}
}

func (d *dispatcher) openTab(fs *project.FileSystem, p project.Path) {
	if d.caps.Tabs == nil {
		return
	}
	if n, err := project.Resolve(fs, p); err == nil && n.IsFile() {
		d.caps.Tabs.Open(p, n)
	}
}

func (d *dispatcher) created(next *project.FileSystem, p project.Path, eff Effect) Effect {
	eff = d.commit(eff, next)
	d.selectPath(p)
	d.openTab(next, p)
	return eff
}

func (d *dispatcher) createInFolder(params Params) Effect {
	if d.caps.Files == nil {
		return unavailable("File system")
	}
	if params.Name == "" || params.Parent == "" {
		return warning(tr(`Format: "make [folder] filename under foldername"`), ErrMissingParam)
	}
	fs := d.caps.Files.Snapshot()
	parent, _, miss := d.lookup(fs, params.Parent, true)
	if miss != nil {
		return *miss
	}
	typ := project.TypeFile
	if params.Folder {
		typ = project.TypeFolder
	}
	next, final, err := project.CreateNode(fs, parent, params.Name, typ, "")
	if err != nil {
		return mutationFailed(err, params.Name)
	}
	msg := fmt.Sprintf(tr("Created %s in %s"), final, parent.Base())
	if params.Folder {
		msg = fmt.Sprintf(tr("Created folder %s in %s"), final, parent.Base())
	}
	return d.created(next, parent.Join(final), success(msg))
}

// quickCreate "new file"/"new folder"：没有名称时使用默认名
func (d *dispatcher) quickCreate(params Params, folder bool) Effect {
	if d.caps.Files == nil {
		return unavailable("File system")
	}
	fs := d.caps.Files.Snapshot()
	typ := project.TypeFile
	if folder {
		typ = project.TypeFolder
	}

	var (
		next *project.FileSystem
		p    project.Path
		err  error
	)
	if params.Name == "" {
		next, p, err = project.QuickCreate(fs, typ)
	} else {
		root := fs.FirstRoot()
		var final string
		next, final, err = project.CreateNode(fs, root, params.Name, typ, "")
		if err == nil {
			p = root.Join(final)
		}
	}
	if err != nil {
		return mutationFailed(err, params.Name)
	}
	return d.created(next, p, success(fmt.Sprintf(tr("Created %s"), p.Base())))
}

func (d *dispatcher) createFile(params Params) Effect {
	if d.caps.Files == nil {
		return unavailable("File system")
	}
	if params.Name == "" {
		return warning(tr("Please specify a file name"), ErrMissingParam)
	}
	fs := d.caps.Files.Snapshot()
	root := fs.FirstRoot()
	if root == nil {
		return warning(tr("Please create a folder first"), project.ErrInvalidParent)
	}
	next, final, err := project.CreateNode(fs, root, params.Name, project.TypeFile, "")
	if err != nil {
		return mutationFailed(err, params.Name)
	}
	return d.created(next, root.Join(final), success(fmt.Sprintf(tr("Created file: %s"), final)))
}

func (d *dispatcher) createFolder(params Params) Effect {
	if d.caps.Files == nil {
		return unavailable("File system")
	}
	if params.Name == "" {
		return warning(tr("Please specify a folder name"), ErrMissingParam)
	}
	next, final, err := project.CreateRoot(d.caps.Files.Snapshot(), params.Name)
	if err != nil {
		return mutationFailed(err, params.Name)
	}
	return d.created(next, project.Path{final}, success(fmt.Sprintf(tr("Created folder: %s"), final)))
}

func (d *dispatcher) save() Effect {
	if d.caps.Files == nil || d.caps.Tabs == nil {
		return unavailable("File system")
	}
	tab, ok := d.caps.Tabs.Active()
	if !ok {
		return warning(tr("No file to save"), ErrNoSelection)
	}
	if d.caps.Settings != nil && d.caps.Settings.Settings().FormatOnSave && d.caps.Editor != nil {
		if err := d.caps.Editor.Trigger(ActionFormatDocument); err != nil {
			logger.Warn("format on save failed", logger.Path(tab.Path.String()), logger.Err(err))
		} else if formatted, ok := d.caps.Tabs.Active(); ok {
			tab = formatted
		}
	}
	fs := d.caps.Files.Snapshot()
	next, err := project.UpdateContent(fs, tab.Path, tab.Content)
	if err != nil {
		return mutationFailed(err, tab.Name)
	}
	eff := success(fmt.Sprintf(tr("Saved %s"), tab.Name))
	if next != fs {
		eff = d.commit(eff, next)
	}
	d.caps.Tabs.MarkSaved(tab.ID)
	return eff
}

func (d *dispatcher) open(params Params) Effect {
	if d.caps.Files == nil || d.caps.Tabs == nil {
		return unavailable("File system")
	}
	if params.Name == "" {
		return warning(tr("Please specify a file name"), ErrMissingParam)
	}
	p, n, err := project.FindFileByName(d.caps.Files.Snapshot(), params.Name)
	if err != nil {
		return failure(fmt.Sprintf(tr("File not found: %s"), params.Name), err)
	}
	d.caps.Tabs.Open(p, n)
	d.selectPath(p)
	return success(fmt.Sprintf(tr("Opened %s"), n.Name))
}

func (d *dispatcher) closeTab() Effect {
	if d.caps.Tabs == nil {
		return unavailable("Tabs")
	}
	tab, ok := d.caps.Tabs.Active()
	if !ok {
		return info(tr("No open tabs"), nil)
	}
	if tab.Modified && !d.confirm(fmt.Sprintf(tr("%s has unsaved changes. Close anyway?"), tab.Name)) {
		return info(tr("Close cancelled"), ErrCancelled)
	}
	d.caps.Tabs.Close(tab.ID)
	return success(tr("File closed"))
}

func (d *dispatcher) closeAll() Effect {
	if d.caps.Tabs == nil {
		return unavailable("Tabs")
	}
	if d.caps.Tabs.CloseAll() == 0 {
		return info(tr("No open tabs"), nil)
	}
	return success(tr("All tabs closed"))
}

func (d *dispatcher) rename(params Params) Effect {
	if d.caps.Files == nil {
		return unavailable("File system")
	}
	if params.NewName == "" {
		return warning(tr(`Say "rename <name> to <new name>"`), ErrMissingParam)
	}
	fs := d.caps.Files.Snapshot()
	p, n, miss := d.target(fs, params)
	if miss != nil {
		return *miss
	}
	old := n.Name
	next, err := project.RenameNode(fs, p, params.NewName)
	if err != nil {
		return mutationFailed(err, params.NewName)
	}
	eff := success(fmt.Sprintf(tr("Renamed %s to %s"), old, params.NewName))
	if next == fs {
		return eff
	}
	eff = d.commit(eff, next)
	renamed := p.Parent().Join(params.NewName)
	if d.caps.Tabs != nil {
		d.caps.Tabs.Retarget(p, renamed)
	}
	if d.caps.Selection != nil {
		if sel, ok := d.caps.Selection.Selected(); ok && sel.HasPrefix(p) {
			d.caps.Selection.Select(append(renamed, sel[len(p):]...))
		}
	}
	if d.caps.Clipboard != nil {
		if clip := d.caps.Clipboard.Clipboard(); clip.Under(p) {
			d.caps.Clipboard.SetClipboard(clip.Retarget(p, renamed))
		}
	}
	return eff
}

func (d *dispatcher) remove(params Params) Effect {
	if d.caps.Files == nil {
		return unavailable("File system")
	}
	fs := d.caps.Files.Snapshot()
	p, n, miss := d.target(fs, params)
	if miss != nil {
		return *miss
	}
	confirmDelete := d.caps.Settings == nil || d.caps.Settings.Settings().ConfirmBeforeDelete
	if confirmDelete && !d.confirm(fmt.Sprintf(tr(`Delete "%s"?`), n.Name)) {
		return info(tr("Delete cancelled"), ErrCancelled)
	}
	next, err := project.DeleteNode(fs, p)
	if err != nil {
		return mutationFailed(err, n.Name)
	}
	eff := d.commit(success(fmt.Sprintf(tr("Deleted: %s"), n.Name)), next)
	if d.caps.Tabs != nil {
		d.caps.Tabs.CloseUnder(p)
	}
	if d.caps.Selection != nil {
		if sel, ok := d.caps.Selection.Selected(); ok && sel.HasPrefix(p) {
			d.caps.Selection.ClearSelection()
		}
	}
	if d.caps.Clipboard != nil && d.caps.Clipboard.Clipboard().Under(p) {
		d.caps.Clipboard.SetClipboard(nil)
	}
	return eff
}

func (d *dispatcher) clip(params Params, cut bool) Effect {
	if d.caps.Files == nil || d.caps.Clipboard == nil {
		return unavailable("Clipboard")
	}
	p, n, miss := d.target(d.caps.Files.Snapshot(), params)
	if miss != nil {
		return *miss
	}
	if cut {
		d.caps.Clipboard.SetClipboard(project.Cut(p, n))
		return success(fmt.Sprintf(tr("Cut: %s"), n.Name))
	}
	d.caps.Clipboard.SetClipboard(project.Copy(p, n))
	return success(fmt.Sprintf(tr("Copied: %s"), n.Name))
}

func (d *dispatcher) paste(params Params) Effect {
	if d.caps.Files == nil || d.caps.Clipboard == nil {
		return unavailable("Clipboard")
	}
	clip := d.caps.Clipboard.Clipboard()
	if clip.Empty() {
		return warning(tr("Nothing to paste. Copy or cut something first"), project.ErrRejected)
	}
	fs := d.caps.Files.Snapshot()

	var target project.Path
	if params.Parent != "" {
		p, _, miss := d.lookup(fs, params.Parent, true)
		if miss != nil {
			return *miss
		}
		target = p
	} else {
		var sel project.Path
		ok := false
		if d.caps.Selection != nil {
			sel, ok = d.caps.Selection.Selected()
		}
		if !ok {
			return info(tr("Please select a folder first"), ErrNoSelection)
		}
		if n, err := project.Resolve(fs, sel); err != nil || !n.IsFolder() {
			return warning(tr("Please select a folder first"), ErrNoSelection)
		}
		target = sel
	}

	next, final, remaining, err := project.Paste(fs, clip, target)
	if err != nil {
		return mutationFailed(err, clip.Node.Name)
	}
	eff := d.commit(success(fmt.Sprintf(tr("Pasted: %s"), final)), next)
	d.caps.Clipboard.SetClipboard(remaining)
	if clip.Action == project.ClipCut && d.caps.Tabs != nil {
		d.caps.Tabs.Retarget(clip.Path, target.Join(final))
	}
	return eff
}

func (d *dispatcher) selectItem(params Params) Effect {
	if d.caps.Files == nil || d.caps.Selection == nil {
		return unavailable("Selection")
	}
	if params.Name == "" {
		return warning(tr("Please specify a file name"), ErrMissingParam)
	}
	p, n, miss := d.lookup(d.caps.Files.Snapshot(), params.Name, params.Folder)
	if miss != nil {
		return *miss
	}
	d.caps.Selection.Select(p)
	return success(fmt.Sprintf(tr("Selected %s"), n.Name))
}

func (d *dispatcher) download(params Params) Effect {
	if d.caps.Files == nil || d.caps.Shell == nil {
		return unavailable("Download")
	}
	p, n, miss := d.target(d.caps.Files.Snapshot(), params)
	if miss != nil {
		return *miss
	}
	if err := d.caps.Shell.Download(p, n); err != nil {
		return failure(fmt.Sprintf(tr("Download failed: %s"), n.Name), err)
	}
	return success(fmt.Sprintf(tr("Downloading %s"), n.Name))
}

func (d *dispatcher) listFiles() Effect {
	if d.caps.Files == nil {
		return unavailable("File system")
	}
	files := project.Files(d.caps.Files.Snapshot())
	if len(files) == 0 {
		return info(tr("No files yet"), nil)
	}
	names := make([]string, 0, listFilesLimit)
	for i, p := range files {
		if i == listFilesLimit {
			names = append(names, "...")
			break
		}
		names = append(names, p.Base())
	}
	return info(fmt.Sprintf(tr("%d files: %s"), len(files), strings.Join(names, ", ")), nil)
}
