package biz

import (
	"fmt"
	"strings"
	"time"

	providertypes "github.com/lk2023060901/ai-chatbox-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-chatbox-backend/internal/chat/types"
)

// 归一化产物中的固定文案
const (
	NoticeNoOutput  = "(no output received)"
	NoticeNoContent = "(no recognizable content)"
	ImageCaption    = "Image generated:"
)

// Reduce 将托管 API 的异构输出归一化为单条展示消息。
// 全量扫描、不短路；未识别的输出项类型忽略；多个图片结果保留最后一个。
// output 为 nil（响应缺失 output 字段）与空数组是两种不同情形。
func Reduce(output []providertypes.OutputItem, id string) *types.DisplayMessage {
	msg := &types.DisplayMessage{
		ID:          id,
		IsAssistant: true,
		CreatedAt:   time.Now(),
	}

	if output == nil {
		msg.Text = NoticeNoOutput
		return msg
	}

	var text strings.Builder
	var image string

	for _, item := range output {
		switch item.Type {
		case providertypes.OutputTypeMessage:
			seg := firstTextSegment(item.Content)
			if seg == "" {
				continue
			}
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.WriteString(seg)

		case providertypes.OutputTypeImageGeneration:
			if item.Result == "" || item.OutputFormat == "" {
				continue
			}
			image = fmt.Sprintf("data:image/%s;base64,%s", item.OutputFormat, item.Result)
			if text.Len() == 0 {
				text.WriteString(ImageCaption)
			}
		}
	}

	msg.Text = text.String()
	msg.Image = image
	if msg.Text == "" && msg.Image == "" {
		msg.Text = NoticeNoContent
	}
	return msg
}

// firstTextSegment 取 message 输出项内容块中第一个非空文本段
func firstTextSegment(blocks []providertypes.OutputContent) string {
	for _, b := range blocks {
		if b.Type == providertypes.OutputTypeText && b.Text != "" {
			return b.Text
		}
	}
	return ""
}
