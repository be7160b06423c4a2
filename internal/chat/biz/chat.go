package biz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	providertypes "github.com/lk2023060901/ai-chatbox-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-chatbox-backend/internal/chat/storage"
	"github.com/lk2023060901/ai-chatbox-backend/internal/chat/types"
	apperrors "github.com/lk2023060901/ai-chatbox-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-chatbox-backend/internal/pkg/metrics"
)

// ResponseClient 托管补全 API
type ResponseClient interface {
	CreateResponse(ctx context.Context, req *providertypes.ResponseRequest) (*providertypes.Response, error)
}

// FileUploader 托管存储侧通道（Files API）
type FileUploader interface {
	UploadFile(ctx context.Context, filename string, data []byte) (string, error)
}

// ChatUseCase 单轮对话用例。无服务端会话状态，续写标识由客户端携带；
// 一轮内附件上传严格先于补全调用，补全严格先于归一化。
type ChatUseCase struct {
	shaper   *Shaper
	client   ResponseClient
	uploader FileUploader
	store    storage.Store
	logger   *zap.Logger
}

// NewChatUseCase 创建对话用例
func NewChatUseCase(
	shaper *Shaper,
	client ResponseClient,
	uploader FileUploader,
	store storage.Store,
	logger *zap.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		shaper:   shaper,
		client:   client,
		uploader: uploader,
		store:    store,
		logger:   logger,
	}
}

// RunTurn 执行一轮对话。任何失败同步上抛，不重试。
func (uc *ChatUseCase) RunTurn(ctx context.Context, input *types.TurnInput) (*types.TurnResult, error) {
	// 空提交在任何网络调用前拒绝
	if input.Text == "" && input.Attachment == nil {
		metrics.RecordTurn(metrics.OutcomeValidationError)
		return nil, apperrors.New(apperrors.ErrChatEmptyMessage)
	}

	var fileID string
	if att := input.Attachment; att != nil {
		data, err := uc.store.Read(ctx, att.StoredKey)
		if err != nil {
			metrics.RecordTurn(metrics.OutcomeUploadError)
			return nil, apperrors.Wrap(err, apperrors.ErrChatStagingFailed)
		}

		// 轮次结束后删除暂存副本（尽力而为）
		defer func() {
			if err := uc.store.Remove(context.Background(), att.StoredKey); err != nil {
				uc.logger.Warn("failed to remove staged attachment",
					zap.String("key", att.StoredKey), zap.Error(err))
			}
		}()

		fileID, err = uc.uploader.UploadFile(ctx, att.UploadName(), data)
		if err != nil {
			metrics.RecordUpload(string(att.Kind()), "error")
			metrics.RecordTurn(metrics.OutcomeUploadError)
			// 上传失败中止整轮，不再调用补全
			return nil, apperrors.Wrap(err, apperrors.ErrChatUploadFailed)
		}
		metrics.RecordUpload(string(att.Kind()), "ok")

		uc.logger.Info("attachment uploaded",
			zap.String("file_id", fileID),
			zap.String("filename", att.UploadName()),
			zap.String("kind", string(att.Kind())),
			zap.Int("size", len(data)))
	}

	req := uc.shaper.Shape(input, fileID)

	start := time.Now()
	resp, err := uc.client.CreateResponse(ctx, req)
	metrics.ObserveCompletion(time.Since(start))
	if err != nil {
		metrics.RecordTurn(metrics.OutcomeCompletionError)
		return nil, apperrors.Wrap(err, apperrors.ErrChatCompletionFailed)
	}

	id := resp.ID
	if id == "" {
		id = "local-" + uuid.New().String()
	}
	msg := Reduce(resp.Output, id)

	uc.logger.Info("turn completed",
		zap.String("response_id", resp.ID),
		zap.Bool("has_image", msg.Image != ""),
		zap.Duration("elapsed", time.Since(start)))

	metrics.RecordTurn(metrics.OutcomeOK)
	return &types.TurnResult{ResponseID: resp.ID, Message: msg}, nil
}
