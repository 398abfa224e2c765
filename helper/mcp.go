package helper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// lookupArg 先查顶层参数，再查部分客户端使用的嵌套 "args"
func lookupArg(req mcp.CallToolRequest, key string) (any, bool) {
	args := req.GetArguments()
	if v, ok := args[key]; ok {
		return v, true
	}
	if nested, ok := args["args"].(map[string]any); ok {
		v, ok := nested[key]
		return v, ok
	}
	return nil, false
}

// GetStringFromRequest 取非空字符串参数，缺失时返回 def 与 false
func GetStringFromRequest(req mcp.CallToolRequest, key string, def string) (string, bool) {
	v, ok := lookupArg(req, key)
	if !ok {
		return def, false
	}
	s, isString := v.(string)
	if !isString || strings.TrimSpace(s) == "" {
		return def, false
	}
	return s, true
}

// ToJSON 缩进输出，失败时退回 %v
func ToJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
