package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore 本地磁盘暂存
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalStore 创建本地暂存目录
func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if dir == "" {
		dir = "data/uploads"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	logger.Info("local staging store initialized", zap.String("dir", dir))

	return &LocalStore{dir: dir, logger: logger}, nil
}

// Save 写入暂存文件
func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader, size int64) (*StagedFile, error) {
	key := newStagedKey(originalName)
	path := filepath.Join(s.dir, key)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write staged file: %w", err)
	}

	s.logger.Debug("attachment staged",
		zap.String("key", key),
		zap.String("filename", originalName),
		zap.Int64("size", written))

	return &StagedFile{Key: key, OriginalName: originalName, Size: written}, nil
}

// Read 读回暂存文件字节
func (s *LocalStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to read staged file: %w", err)
	}
	return data, nil
}

// Remove 删除暂存文件
func (s *LocalStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, key)); err != nil {
		return fmt.Errorf("failed to remove staged file: %w", err)
	}
	return nil
}
