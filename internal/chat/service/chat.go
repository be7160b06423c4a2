package service

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lk2023060901/ai-chatbox-backend/internal/chat/biz"
	"github.com/lk2023060901/ai-chatbox-backend/internal/chat/storage"
	"github.com/lk2023060901/ai-chatbox-backend/internal/chat/types"
	apperrors "github.com/lk2023060901/ai-chatbox-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-chatbox-backend/internal/pkg/response"
)

// ChatService 聊天接口
type ChatService struct {
	chatUseCase *biz.ChatUseCase
	store       storage.Store
	maxFileSize int64
	logger      *zap.Logger
}

// NewChatService 创建聊天服务
func NewChatService(chatUseCase *biz.ChatUseCase, store storage.Store, maxFileSize int64, logger *zap.Logger) *ChatService {
	return &ChatService{
		chatUseCase: chatUseCase,
		store:       store,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// RegisterRoutes 注册路由
func (s *ChatService) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", s.Chat)
}

// chatRequest 表单与 JSON 共用字段（JSON 仅纯文本轮次）
type chatRequest struct {
	Message            string `form:"message" json:"message"`
	PreviousResponseID string `form:"previous_response_id" json:"previous_response_id"`

	EnableWebSearch       bool `form:"enable_web_search" json:"enable_web_search"`
	EnableCodeExecution   bool `form:"enable_code_execution" json:"enable_code_execution"`
	EnableDocRetrieval    bool `form:"enable_doc_retrieval" json:"enable_doc_retrieval"`
	EnableImageGeneration bool `form:"enable_image_generation" json:"enable_image_generation"`
}

// Chat 处理一轮用户消息。附件走 multipart/form-data（字段名 file），
// 纯文本可走 application/json。
func (s *ChatService) Chat(c *gin.Context) {
	var req chatRequest
	var attachment *types.Attachment

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			response.BadRequest(c, "invalid form data")
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			response.BadRequest(c, "invalid multipart form")
			return
		}

		files := form.File["file"]
		if len(files) > 1 {
			// 每轮最多一个附件
			response.ErrorWithCode(c, apperrors.ErrChatTooManyFiles)
			return
		}

		if len(files) == 1 {
			header := files[0]
			if s.maxFileSize > 0 && header.Size > s.maxFileSize {
				response.ErrorWithCode(c, apperrors.ErrChatFileTooLarge)
				return
			}

			f, err := header.Open()
			if err != nil {
				response.BadRequest(c, "failed to open uploaded file")
				return
			}
			defer f.Close()

			staged, err := s.store.Save(c.Request.Context(), header.Filename, f, header.Size)
			if err != nil {
				s.logger.Error("failed to stage attachment",
					zap.String("filename", header.Filename), zap.Error(err))
				response.ErrorWithCode(c, apperrors.ErrChatStagingFailed)
				return
			}

			attachment = &types.Attachment{
				StoredKey:    staged.Key,
				OriginalName: header.Filename,
				Size:         staged.Size,
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	message := strings.TrimSpace(req.Message)

	// 空提交在任何协作方调用前拒绝
	if message == "" && attachment == nil {
		response.ErrorWithCode(c, apperrors.ErrChatEmptyMessage)
		return
	}

	input := &types.TurnInput{
		Text:               message,
		PreviousResponseID: req.PreviousResponseID,
		Attachment:         attachment,
		Toggles: types.ToolToggles{
			WebSearch:       req.EnableWebSearch,
			CodeExecution:   req.EnableCodeExecution,
			DocRetrieval:    req.EnableDocRetrieval,
			ImageGeneration: req.EnableImageGeneration,
		},
	}

	result, err := s.chatUseCase.RunTurn(c.Request.Context(), input)
	if err != nil {
		s.logger.Error("chat turn failed", zap.Error(err))
		response.HandleError(c, err)
		return
	}

	response.Success(c, result)
}
