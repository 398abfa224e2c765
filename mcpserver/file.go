package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/speak/workspace"
)

var toolHandlers map[string]toolHandler

// RegisterFileTools 将文件树相关工具注册到 MCP 服务器
func RegisterFileTools(s *server.MCPServer, sess *workspace.Session) {
	if s == nil || sess == nil {
		return
	}
	if toolHandlers == nil {
		toolHandlers = make(map[string]toolHandler)
	}

	// fs_tree
	toolTree := mcp.NewTool(
		"fs_tree",
		mcp.WithDescription("输出文件树（文本），不给路径时输出所有根目录"),
		mcp.WithString("path", mcp.Description("文件夹路径，如 My Project/src")),
		mcp.WithBoolean("showFiles", mcp.Description("是否显示文件，默认 true")),
		mcp.WithBoolean("showHidden", mcp.Description("是否显示隐藏项，默认 false")),
		mcp.WithNumber("maxDepth", mcp.Description("最大深度（0 表示不限制）")),
	)
	hTree := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { return fsTree(ctx, sess, req) }
	s.AddTool(toolTree, hTree)
	toolHandlers["fs_tree"] = hTree

	// fs_list
	toolList := mcp.NewTool(
		"fs_list",
		mcp.WithDescription("列出文件夹的直接子项"),
		mcp.WithString("path", mcp.Required(), mcp.Description("文件夹路径")),
	)
	hList := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { return fsList(ctx, sess, req) }
	s.AddTool(toolList, hList)
	toolHandlers["fs_list"] = hList

	// fs_read
	toolRead := mcp.NewTool(
		"fs_read",
		mcp.WithDescription("读取文件内容"),
		mcp.WithString("path", mcp.Required(), mcp.Description("文件路径，如 My Project/README.md")),
	)
	hRead := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { return fsRead(ctx, sess, req) }
	s.AddTool(toolRead, hRead)
	toolHandlers["fs_read"] = hRead

	// fs_write
	toolWrite := mcp.NewTool(
		"fs_write",
		mcp.WithDescription("写入文件内容；文件不存在时在已有文件夹中创建"),
		mcp.WithString("path", mcp.Required(), mcp.Description("文件路径")),
		mcp.WithString("content", mcp.Required(), mcp.Description("文本内容")),
	)
	hWrite := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { return fsWrite(ctx, sess, req) }
	s.AddTool(toolWrite, hWrite)
	toolHandlers["fs_write"] = hWrite

	// fs_stats
	toolStats := mcp.NewTool(
		"fs_stats",
		mcp.WithDescription("文件与文件夹数量、内容大小、语言分布"),
	)
	hStats := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { return fsStats(ctx, sess, req) }
	s.AddTool(toolStats, hStats)
	toolHandlers["fs_stats"] = hStats
}
