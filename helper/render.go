package helper

import (
	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/helper/renders"
)

// GetDefaultRenderer 优先使用 Markdown 渲染，失败时退回纯文本
func GetDefaultRenderer() renders.Renderer {
	md, err := renders.NewMarkdownRenderer(nil, "")
	if err != nil {
		logger.Warn("markdown renderer unavailable", logger.Err(err))
		return renders.NewTextRenderer(nil)
	}
	return md
}
