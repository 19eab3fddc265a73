package testutils

import (
	"testing"
	redispkg "yatube/internal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewTestRedis 启动 miniredis 并替换全局客户端
func NewTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	prev := redispkg.Rdb
	redispkg.Rdb = rdb
	t.Cleanup(func() {
		redispkg.Rdb = prev
		_ = rdb.Close()
	})
	return mr, rdb
}
