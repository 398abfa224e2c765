package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/project"
	prjtree "github.com/sjzsdu/speak/project/tree"
	"github.com/sjzsdu/speak/workspace"
)

const timeLayout = "2006-01-02 15:04:05"

func fsTree(ctx context.Context, sess *workspace.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := prjtree.DefaultOptions()
	opts.ShowFiles = req.GetBool("showFiles", true)
	opts.ShowHidden = req.GetBool("showHidden", false)
	opts.MaxDepth = req.GetInt("maxDepth", 0)
	opts.SortBy = sess.Settings().SortBy
	opts.CompactFolders = sess.Settings().CompactFolders

	fs := sess.Snapshot()
	p := req.GetString("path", "")
	if p == "" {
		return mcp.NewToolResultText(prjtree.Render(fs, opts)), nil
	}
	n, err := project.ResolveFolder(fs, project.ParsePath(p))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("文件夹不存在: %s", p)), nil
	}
	return mcp.NewToolResultText(prjtree.TreeWithOptions(n, opts)), nil
}

func fsList(ctx context.Context, sess *workspace.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing or invalid path parameter: required argument \"path\" not found"), nil
	}
	dir := project.ParsePath(p)
	n, err := project.ResolveFolder(sess.Snapshot(), dir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("文件夹不存在: %s", p)), nil
	}

	type itemT struct {
		Name     string `json:"name"`
		Path     string `json:"path"`
		IsDir    bool   `json:"isDir"`
		Size     int    `json:"size,omitempty"`
		Language string `json:"language,omitempty"`
		ModTime  string `json:"modTime"`
	}
	children := n.SortedChildren()
	items := make([]itemT, 0, len(children))
	for _, c := range children {
		it := itemT{
			Name:    c.Name,
			Path:    dir.Join(c.Name).String(),
			IsDir:   c.IsFolder(),
			ModTime: c.UpdatedAt.Format(timeLayout),
		}
		if c.IsFile() {
			it.Size = len(c.Content)
			it.Language = c.Language
		}
		items = append(items, it)
	}
	return mcp.NewToolResultText(helper.ToJSON(map[string]any{"dir": dir.String(), "items": items})), nil
}

func fsRead(ctx context.Context, sess *workspace.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing or invalid path parameter: required argument \"path\" not found"), nil
	}
	n, err := project.Resolve(sess.Snapshot(), project.ParsePath(p))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("文件不存在: %s", p)), nil
	}
	if !n.IsFile() {
		return mcp.NewToolResultError("不能读取文件夹"), nil
	}
	return mcp.NewToolResultText(n.Content), nil
}

func fsWrite(ctx context.Context, sess *workspace.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path := project.ParsePath(p)
	if len(path) < 2 {
		return mcp.NewToolResultError("路径必须位于某个文件夹下"), nil
	}

	fs := sess.Snapshot()
	created := false
	next, err := project.UpdateContent(fs, path, content)
	if errors.Is(err, project.ErrNotFound) {
		next, _, err = project.CreateNode(fs, path.Parent(), path.Base(), project.TypeFile, content)
		created = true
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess.Commit(next)
	return mcp.NewToolResultText(helper.ToJSON(map[string]any{
		"path":    path.String(),
		"size":    len(content),
		"created": created,
	})), nil
}

func fsStats(ctx context.Context, sess *workspace.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := prjtree.Stats(sess.Snapshot())
	return mcp.NewToolResultText(helper.ToJSON(map[string]any{
		"summary":   stats.String(),
		"folders":   stats.DirectoryCount,
		"files":     stats.FileCount,
		"bytes":     stats.TotalSize,
		"maxDepth":  stats.MaxDepth,
		"languages": stats.Languages,
	})), nil
}
