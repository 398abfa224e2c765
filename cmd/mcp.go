package cmd

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/mcpserver"
	"github.com/sjzsdu/speak/voice"
	"github.com/sjzsdu/speak/workspace"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: lang.T("MCP Server"),
	Long:  lang.T("Expose voice commands and the file tree of the workspace as MCP tools"),
	RunE:  runMCP,
}

var (
	mcpTransport string
	mcpPortFlag  string
)

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "", lang.T("Transport (stdio, http, sse), default stdio"))
	mcpCmd.Flags().StringVar(&mcpPortFlag, "port", "8080", lang.T("HTTP/SSE server port"))
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		sess.Flush()
		st.Close()
	}()

	// MCP 客户端没有对话框，确认一律通过，下载写到当前目录
	host := &workspace.Host{Session: sess, Out: os.Stderr}
	in := voice.NewInterpreter(sess.Capabilities(host, nil))
	mcpSrv := mcpserver.NewSpeakMCPServer(sess, in)

	transport := mcpTransport
	if transport == "" {
		transport = os.Getenv("MCP_TRANSPORT")
	}
	port := mcpPortFlag
	if envPort := os.Getenv("MCP_PORT"); envPort != "" {
		port = envPort
	}

	// stdout 属于协议，提示信息写 stderr
	switch transport {
	case "http":
		fmt.Fprintf(os.Stderr, "%s: http://localhost:%s\n", lang.T("MCP server (HTTP)"), port)
		return server.NewStreamableHTTPServer(mcpSrv).Start(":" + port)
	case "sse":
		fmt.Fprintf(os.Stderr, "%s: http://localhost:%s\n", lang.T("MCP server (SSE)"), port)
		return server.NewSSEServer(mcpSrv).Start(":" + port)
	default:
		fmt.Fprintln(os.Stderr, lang.T("MCP server (stdio) started, waiting for a client..."))
		return server.ServeStdio(mcpSrv)
	}
}
