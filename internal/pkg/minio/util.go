package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// ObjectInfo 列举对象时的最小信息
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// ObjectStore 帖子配图存储
type ObjectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	RemoveObject(ctx context.Context, key string) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	PublicURL(key string) string
}

type Store struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
}

// PutObject 上传文件到MinIO
func (s *Store) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// RemoveObject 删除MinIO中的文件
func (s *Store) RemoveObject(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *Store) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	objects := make([]ObjectInfo, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		objects = append(objects, ObjectInfo{Key: obj.Key, LastModified: obj.LastModified})
	}
	return objects, nil
}

// PublicURL 获取文件的公共访问URL
func (s *Store) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.publicEndpoint, "/"), s.bucket, key)
}
