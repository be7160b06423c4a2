package types

// 工具描述符类型（Responses API tools 字段）
const (
	ToolWebSearch       = "web_search"
	ToolCodeInterpreter = "code_interpreter"
	ToolFileSearch      = "file_search"
	ToolImageGeneration = "image_generation"
)

// 输入内容块类型
const (
	ContentInputText  = "input_text"
	ContentInputImage = "input_image"
	ContentInputFile  = "input_file"
)

// ResponseRequest Responses API 请求（POST /responses）
type ResponseRequest struct {
	Model string `json:"model"`

	// PreviousResponseID 续写标识：携带上一轮响应 ID 即在服务端延续上下文
	PreviousResponseID string `json:"previous_response_id,omitempty"`

	// Input 纯文本轮次为 string；携带附件时为 []InputMessage
	Input interface{} `json:"input"`

	// Tools 启用的工具描述符；为空时整个字段省略
	Tools []Tool `json:"tools,omitempty"`
}

// Tool 工具描述符
type Tool struct {
	Type           string         `json:"type"`
	Container      *ToolContainer `json:"container,omitempty"`        // code_interpreter 专用
	VectorStoreIDs []string       `json:"vector_store_ids,omitempty"` // file_search 专用
}

// ToolContainer code_interpreter 的执行容器配置
type ToolContainer struct {
	Type string `json:"type"` // auto
}

// InputMessage 多模态输入消息
type InputMessage struct {
	Role    string         `json:"role"`
	Content []InputContent `json:"content"`
}

// InputContent 输入内容块（input_text | input_image | input_file）
type InputContent struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	FileID string `json:"file_id,omitempty"` // Files API 返回的附件标识
}
