package types

import (
	"path/filepath"
	"strings"
	"time"
)

// AttachmentKind 附件类别（按扩展名分类）
type AttachmentKind string

const (
	AttachmentKindImage    AttachmentKind = "image"
	AttachmentKindDocument AttachmentKind = "document"
)

// imageExtensions 按图片内容块发送的扩展名；其余一律按文档处理
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ClassifyAttachment 按扩展名分类附件（大小写不敏感）。
// 优先读原始文件名，原始文件名无扩展名时回退暂存 key。
func ClassifyAttachment(originalName, storedKey string) AttachmentKind {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(storedKey))
	}
	if imageExtensions[ext] {
		return AttachmentKindImage
	}
	return AttachmentKindDocument
}

// Attachment 单轮附件（每轮最多一个）
type Attachment struct {
	StoredKey    string // 暂存 key（uuid 前缀，保留原始扩展名）
	OriginalName string // 浏览器上报的原始文件名
	Size         int64
}

// Kind 返回附件类别
func (a *Attachment) Kind() AttachmentKind {
	return ClassifyAttachment(a.OriginalName, a.StoredKey)
}

// UploadName 返回上传到托管存储侧通道时使用的文件名。
// 服务端按扩展名推断内容类型，必须携带真实扩展名。
func (a *Attachment) UploadName() string {
	if a.OriginalName != "" {
		return a.OriginalName
	}
	return filepath.Base(a.StoredKey)
}

// ToolToggles 工具开关（四个独立布尔，各自映射一个工具描述符）
type ToolToggles struct {
	WebSearch       bool `json:"enable_web_search" form:"enable_web_search"`
	CodeExecution   bool `json:"enable_code_execution" form:"enable_code_execution"`
	DocRetrieval    bool `json:"enable_doc_retrieval" form:"enable_doc_retrieval"`
	ImageGeneration bool `json:"enable_image_generation" form:"enable_image_generation"`
}

// TurnInput 一轮用户输入
type TurnInput struct {
	Text               string      // 附件存在时可为空
	PreviousResponseID string      // 续写标识，首轮为空
	Attachment         *Attachment // 可选
	Toggles            ToolToggles
}

// DisplayMessage 归一化后的展示消息
type DisplayMessage struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	IsAssistant    bool      `json:"is_assistant"`
	Image          string    `json:"image,omitempty"` // data URI
	AttachmentName string    `json:"attachment_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TurnResult 一轮对话的结果
type TurnResult struct {
	// ResponseID 托管 API 返回的响应 ID，由客户端作为下一轮的续写标识携带
	ResponseID string          `json:"response_id"`
	Message    *DisplayMessage `json:"message"`
}
