package types

import "fmt"

// ProviderError Provider 错误
type ProviderError struct {
	Provider   string // Provider 名称
	StatusCode int    // HTTP 状态码（网络层失败时为 0）
	Message    string // 错误消息
	Err        error  // 原始错误
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s] %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError 创建 Provider 错误
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}
