package logger

import (
	"context"
	log "log/slog"
	"yatube/internal/pkg/consts"
)

// TraceIDKey 请求上下文与 gin.Context 中 trace id 的键
const TraceIDKey = "trace_id"

// TraceID 读取 ctx 中的 trace id，不在请求内时为空串
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}

func userID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(consts.CtxUserID).(uint64)
	return id
}

// requestHandler 给记录补上 trace_id，已登录时再补 user_id
type requestHandler struct {
	log.Handler
}

func (h *requestHandler) Handle(ctx context.Context, r log.Record) error {
	if id := TraceID(ctx); id != "" {
		r.AddAttrs(log.String(TraceIDKey, id))
	}
	if id := userID(ctx); id != 0 {
		r.AddAttrs(log.Uint64("user_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *requestHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &requestHandler{h.Handler.WithAttrs(attrs)}
}

func (h *requestHandler) WithGroup(name string) log.Handler {
	return &requestHandler{h.Handler.WithGroup(name)}
}
