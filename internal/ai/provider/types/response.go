package types

// 已识别的输出项类型；其余类型（推理、工具调用中间态等）一律忽略
const (
	OutputTypeMessage         = "message"
	OutputTypeImageGeneration = "image_generation_call"
)

// OutputTypeText message 内容块中的文本段类型
const OutputTypeText = "output_text"

// Response Responses API 响应
type Response struct {
	ID     string       `json:"id"`
	Object string       `json:"object,omitempty"`
	Model  string       `json:"model,omitempty"`
	Status string       `json:"status,omitempty"`
	Output []OutputItem `json:"output"`
	Usage  *Usage       `json:"usage,omitempty"`
}

// OutputItem 输出项（按 type 区分的变体）
type OutputItem struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status,omitempty"`
	Role    string          `json:"role,omitempty"`
	Content []OutputContent `json:"content,omitempty"` // message 专用

	// image_generation_call 专用
	Result       string `json:"result,omitempty"`        // base64 图片数据
	OutputFormat string `json:"output_format,omitempty"` // png | jpeg | webp
}

// OutputContent message 输出项的内容块
type OutputContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage token 用量统计
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}
