package pagecache

import (
	"context"
	"errors"
	"fmt"
	"time"
	"yatube/internal/pkg/consts"
	redispkg "yatube/internal/pkg/redis"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Entry 缓存的一次完整响应
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store 整页缓存，只按 TTL 或显式 Clear 失效，写操作不会触发失效
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Get 未命中返回 nil, nil
func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := s.rdb.Get(ctx, consts.PageCacheKey+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var entry Entry
	if err = json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("corrupted page cache entry %q: %w", key, err)
	}
	return &entry, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, consts.PageCacheKey+key, raw, ttl).Err()
}

// Clear 清空所有整页缓存
func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := redispkg.DeleteByPrefix(ctx, s.rdb, consts.PageCacheKey)
	return err
}
