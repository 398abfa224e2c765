package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/speak/share"
	"github.com/sjzsdu/speak/voice"
	"github.com/sjzsdu/speak/workspace"
)

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// NewSpeakMCPServer 暴露语音指令与文件树的 MCP 服务器
func NewSpeakMCPServer(sess *workspace.Session, in *voice.Interpreter) *server.MCPServer {
	s := server.NewMCPServer(
		share.MCP_SERVER_NAME,
		share.VERSION,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	toolHandlers = make(map[string]toolHandler)
	RegisterVoiceTools(s, in)
	RegisterFileTools(s, sess)
	return s
}
