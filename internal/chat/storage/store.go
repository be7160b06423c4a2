package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidKey 暂存 key 非法（路径分隔符等）
var ErrInvalidKey = errors.New("invalid staging key")

// StagedFile 暂存的附件
type StagedFile struct {
	Key          string // 暂存 key
	OriginalName string // 原始文件名
	Size         int64
}

// Store 附件暂存。附件落地一次，用例层读回字节做侧通道上传，轮次结束后删除。
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader, size int64) (*StagedFile, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// newStagedKey 生成 uuid 前缀的暂存 key，保留原始扩展名以便回退分类
func newStagedKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

// validateKey 拒绝带路径成分的 key
func validateKey(key string) error {
	if key == "" || key != filepath.Base(key) || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
