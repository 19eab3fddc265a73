package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"
	"yatube/internal/pkg/consts"

	"github.com/redis/go-redis/v9"
)

// RedisLoggerHook 只记录失败与慢命令；参数只保留键名，缓存页面与黑名单签名不进日志
type RedisLoggerHook struct {
	SlowThreshold time.Duration
}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{SlowThreshold: 100 * time.Millisecond}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		fields := []any{
			log.String("command", describeCmd(cmd)),
			log.Duration("latency", elapsed),
		}
		switch {
		case err != nil && !ignorableRedisError(cmd, err):
			log.ErrorContext(ctx, "Redis Error", append(fields, log.Any("err", err))...)
		case err == nil && elapsed > s.SlowThreshold:
			log.WarnContext(ctx, "Redis Slow", fields...)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)

		if err == nil && elapsed <= s.SlowThreshold {
			return nil
		}

		names := make([]string, len(cmds))
		for i, cmd := range cmds {
			names[i] = cmd.Name()
		}
		fields := []any{
			log.String("commands", strings.Join(names, ",")),
			log.Duration("latency", elapsed),
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			log.ErrorContext(ctx, "Redis Pipeline Error", append(fields, log.Any("err", err))...)
		} else if err == nil {
			log.WarnContext(ctx, "Redis Pipeline Slow", fields...)
		}
		return err
	}
}

// ignorableRedisError 未命中和旧版本服务端不支持 CLIENT SETINFO 都不算错误
func ignorableRedisError(cmd redis.Cmder, err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	return cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo")
}

// describeCmd 命令名加键名，其余参数只给出个数
func describeCmd(cmd redis.Cmder) string {
	name := cmd.Name()
	args := cmd.Args()
	if name == "auth" || name == "hello" {
		return name + " [PROTECTED]"
	}
	if len(args) < 2 {
		return name
	}

	key := fmt.Sprint(args[1])
	if strings.HasPrefix(key, consts.TokenBlacklistKey) {
		key = consts.TokenBlacklistKey + "[PROTECTED]"
	}
	if rest := len(args) - 2; rest > 0 {
		return fmt.Sprintf("%s %s (+%d args)", name, key, rest)
	}
	return name + " " + key
}
