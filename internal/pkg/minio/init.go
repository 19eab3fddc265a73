package minio

import (
	"context"
	"fmt"
	log "log/slog"
	"yatube/internal/api/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewStore 初始化 MinIO 客户端，bucket 不存在时自动创建
func NewStore(ctx context.Context, cfg config.MinIOConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
		log.Info("MinIO bucket created", "bucket", cfg.Bucket)
	}

	publicEndpoint := cfg.PublicEndpoint
	if publicEndpoint == "" {
		protocol := "http"
		if cfg.UseSSL {
			protocol = "https"
		}
		publicEndpoint = fmt.Sprintf("%s://%s", protocol, cfg.Endpoint)
	}

	return &Store{
		client:         client,
		bucket:         cfg.Bucket,
		publicEndpoint: publicEndpoint,
	}, nil
}
