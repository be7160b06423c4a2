package biz

import (
	providertypes "github.com/lk2023060901/ai-chatbox-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-chatbox-backend/internal/chat/types"
)

// DefaultFallbackPrompt 附件无文字说明时的兜底提示语
const DefaultFallbackPrompt = "please analyze this file"

// Shaper 将一轮用户输入整形为托管补全 API 的请求载荷
type Shaper struct {
	Model          string
	VectorStoreIDs []string // file_search 检索的向量库（可为空）
	FallbackPrompt string   // 为空时用 DefaultFallbackPrompt
}

// Shape 生成请求载荷。attachmentFileID 为附件上传侧通道返回的标识，
// 无附件时传空串。
func (s *Shaper) Shape(input *types.TurnInput, attachmentFileID string) *providertypes.ResponseRequest {
	req := &providertypes.ResponseRequest{
		Model:              s.Model,
		PreviousResponseID: input.PreviousResponseID,
	}

	// 工具顺序固定：联网搜索、代码执行、文档检索、图片生成
	var tools []providertypes.Tool
	if input.Toggles.WebSearch {
		tools = append(tools, providertypes.Tool{Type: providertypes.ToolWebSearch})
	}
	if input.Toggles.CodeExecution {
		tools = append(tools, providertypes.Tool{
			Type:      providertypes.ToolCodeInterpreter,
			Container: &providertypes.ToolContainer{Type: "auto"},
		})
	}
	if input.Toggles.DocRetrieval {
		tools = append(tools, providertypes.Tool{
			Type:           providertypes.ToolFileSearch,
			VectorStoreIDs: s.VectorStoreIDs,
		})
	}
	if input.Toggles.ImageGeneration {
		tools = append(tools, providertypes.Tool{Type: providertypes.ToolImageGeneration})
	}
	if len(tools) > 0 {
		req.Tools = tools
	}

	// 无附件：input 就是原始文本
	if input.Attachment == nil {
		req.Input = input.Text
		return req
	}

	text := input.Text
	if text == "" {
		text = s.fallbackPrompt()
	}

	ref := providertypes.InputContent{
		Type:   providertypes.ContentInputFile,
		FileID: attachmentFileID,
	}
	if input.Attachment.Kind() == types.AttachmentKindImage {
		ref.Type = providertypes.ContentInputImage
	}

	// 附件轮次：单条 user 消息，文本块在前，附件引用块在后
	req.Input = []providertypes.InputMessage{
		{
			Role: "user",
			Content: []providertypes.InputContent{
				{Type: providertypes.ContentInputText, Text: text},
				ref,
			},
		},
	}
	return req
}

func (s *Shaper) fallbackPrompt() string {
	if s.FallbackPrompt != "" {
		return s.FallbackPrompt
	}
	return DefaultFallbackPrompt
}
