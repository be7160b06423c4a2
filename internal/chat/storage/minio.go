package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinIOConfig MinIO 暂存后端配置
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinIOStore 对象存储暂存（多实例部署时共享暂存区）
type MinIOStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewMinIOStore 创建 MinIO 暂存，bucket 不存在时自动创建
func NewMinIOStore(ctx context.Context, cfg *MinIOConfig, logger *zap.Logger) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	logger.Info("minio staging store initialized",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))

	return &MinIOStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Save 上传暂存对象
func (s *MinIOStore) Save(ctx context.Context, originalName string, r io.Reader, size int64) (*StagedFile, error) {
	key := newStagedKey(originalName)

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stage object: %w", err)
	}

	s.logger.Debug("attachment staged",
		zap.String("key", key),
		zap.String("filename", originalName),
		zap.Int64("size", info.Size))

	return &StagedFile{Key: key, OriginalName: originalName, Size: info.Size}, nil
}

// Read 读回暂存对象字节
func (s *MinIOStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get staged object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged object: %w", err)
	}
	return data, nil
}

// Remove 删除暂存对象
func (s *MinIOStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove staged object: %w", err)
	}
	return nil
}
