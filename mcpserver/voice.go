package mcpserver

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/voice"
)

// RegisterVoiceTools 注册语音指令工具
func RegisterVoiceTools(s *server.MCPServer, in *voice.Interpreter) {
	if s == nil || in == nil {
		return
	}

	toolCommand := mcp.NewTool(
		"voice_command",
		mcp.WithDescription("执行一条语音指令（转写文本），返回分类结果与通知"),
		mcp.WithString("utterance", mcp.Required(), mcp.Description("转写文本，如 create file app.js")),
	)
	hCommand := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return voiceCommand(ctx, in, req)
	}
	s.AddTool(toolCommand, hCommand)
	toolHandlers["voice_command"] = hCommand

	toolHelp := mcp.NewTool(
		"voice_help",
		mcp.WithDescription("列出可以说的指令示例"),
	)
	hHelp := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(voice.HelpMarkdown()), nil
	}
	s.AddTool(toolHelp, hHelp)
	toolHandlers["voice_help"] = hHelp
}

func voiceCommand(ctx context.Context, in *voice.Interpreter, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	utterance, ok := helper.GetStringFromRequest(req, "utterance", "")
	if !ok {
		return mcp.NewToolResultError("missing or invalid utterance parameter"), nil
	}
	eff, err := in.Handle(ctx, utterance)
	if errors.Is(err, voice.ErrBusy) {
		return mcp.NewToolResultError("another command is still running"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := map[string]any{
		"intent":       eff.Command.Intent,
		"params":       eff.Command.Params,
		"outcome":      eff.Outcome(),
		"notification": eff.Notification,
	}
	if eff.Action != "" {
		res["action"] = eff.Action
	}
	if eff.Err != nil {
		res["error"] = eff.Err.Error()
	}
	return mcp.NewToolResultText(helper.ToJSON(res)), nil
}
