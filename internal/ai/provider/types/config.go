package types

import (
	"errors"
	"time"
)

var (
	ErrMissingAPIKey  = errors.New("API key is required")
	ErrMissingBaseURL = errors.New("base URL is required")
)

// Config Provider 配置
type Config struct {
	APIKey  string        // API Key
	BaseURL string        // API 基础 URL
	Timeout time.Duration // 请求超时
	Model   string        // 默认模型

	// FilePurpose Files API 上传用途（默认 user_data）
	FilePurpose string

	// VectorStoreIDs file_search 工具检索的向量库
	VectorStoreIDs []string
}

// Validate 验证配置并填充默认值
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.FilePurpose == "" {
		c.FilePurpose = "user_data"
	}
	return nil
}
