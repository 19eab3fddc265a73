package logger

import (
	"fmt"
	"io"
	log "log/slog"
	"net"
	"os"
	"strings"
	"time"
	"yatube/internal/api/config"
)

var LogWriter io.Writer = os.Stdout

// 这些字段的值一律不落日志
var secretKeys = map[string]bool{
	"password":     true,
	"password1":    true,
	"password2":    true,
	"old_password": true,
	"token":        true,
}

func jsonOptions() *log.HandlerOptions {
	return &log.HandlerOptions{
		Level: log.LevelInfo,
		ReplaceAttr: func(_ []string, a log.Attr) log.Attr {
			if secretKeys[strings.ToLower(a.Key)] {
				return log.String(a.Key, "[PROTECTED]")
			}
			return a
		},
	}
}

// InitLogger 初始化全局 slog，配置了 logstash 地址时请求日志同时上报远端
func InitLogger(cfg config.LogstashConfig) {
	handlers := fanoutHandler{log.NewJSONHandler(os.Stdout, jsonOptions())}

	if cfg.Address != "" {
		remote, conn, err := dialLogstash(cfg)
		if err != nil {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		} else {
			handlers = append(handlers, &requestOnlyHandler{next: remote})
			LogWriter = io.MultiWriter(os.Stdout, conn)
		}
	}

	log.SetDefault(log.New(&requestHandler{handlers}))
}

func dialLogstash(cfg config.LogstashConfig) (log.Handler, net.Conn, error) {
	conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("dial logstash %s: %w", cfg.Address, err)
	}
	h := log.NewJSONHandler(conn, jsonOptions()).WithAttrs([]log.Attr{
		log.String("target_index", cfg.Index),
		log.String("log_token", cfg.Token),
	})
	return h, conn, nil
}
