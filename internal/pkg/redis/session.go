package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"yatube/internal/pkg/consts"

	"github.com/redis/go-redis/v9"
)

func sessionVersionKey(userID uint64) string {
	return consts.SessionVersionKey + strconv.FormatUint(userID, 10)
}

// SessionVersion 当前会话版本，从未吊销过时为 0
func SessionVersion(ctx context.Context, userID uint64) (int64, error) {
	value, err := GetValue(ctx, sessionVersionKey(userID))
	if err != nil || value == "" {
		return 0, err
	}
	version, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupted session version for user %d: %w", userID, err)
	}
	return version, nil
}

// BumpSessionVersion 吊销该用户此前签发的全部 token，返回新版本。
// ttl 为 0 时版本永久保存；仍会签发新 token 的用户必须传 0，否则键过期后版本回落，
// 之后签发的 token 会在下次吊销时漏网
func BumpSessionVersion(ctx context.Context, userID uint64, ttl time.Duration) (int64, error) {
	key := sessionVersionKey(userID)
	var incr *redis.IntCmd
	_, err := Rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
