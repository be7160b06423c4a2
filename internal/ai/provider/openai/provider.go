package openai

import (
	"context"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"

	"github.com/lk2023060901/ai-chatbox-backend/internal/ai/provider/types"
)

// Provider OpenAI Responses API Provider
type Provider struct {
	config *types.Config
	http   *resty.Client
	files  *openai.Client
}

// New 创建 OpenAI Provider
func New(config *types.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(config.APIKey).
		SetTimeout(config.Timeout)

	// Files API 走官方 SDK，上传名由调用方指定
	fileCfg := openai.DefaultConfig(config.APIKey)
	fileCfg.BaseURL = config.BaseURL

	return &Provider{
		config: config,
		http:   httpClient,
		files:  openai.NewClientWithConfig(fileCfg),
	}, nil
}

// Name 返回 Provider 名称
func (p *Provider) Name() string {
	return "openai"
}

// CreateResponse 调用 /responses 创建补全（同步，不重试）
func (p *Provider) CreateResponse(ctx context.Context, req *types.ResponseRequest) (*types.Response, error) {
	if req.Model == "" {
		req.Model = p.config.Model
	}

	var result types.Response
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/responses")
	if err != nil {
		return nil, types.NewProviderError(p.Name(), "request failed", err)
	}

	if resp.IsError() {
		return nil, &types.ProviderError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode(),
			Message:    extractAPIError(resp.Body()),
		}
	}

	return &result, nil
}

// UploadFile 通过 Files API 上传附件字节，返回 file-id。
// filename 必须携带真实扩展名：服务端按扩展名推断内容类型。
func (p *Provider) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	file, err := p.files.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    filename,
		Bytes:   data,
		Purpose: openai.PurposeType(p.config.FilePurpose),
	})
	if err != nil {
		return "", types.NewProviderError(p.Name(), "upload file failed", err)
	}

	return file.ID, nil
}

// extractAPIError 从错误响应体中提取 error.message，取不到时回退原始 body
func extractAPIError(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	return string(body)
}
