package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// fanoutHandler 同一条记录交给每个启用了该级别的 Handler
type fanoutHandler []log.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []log.Attr) log.Handler {
	next := make(fanoutHandler, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanoutHandler) WithGroup(name string) log.Handler {
	next := make(fanoutHandler, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// requestOnlyHandler 只转发请求内（带 trace id）的记录，启动与定时任务日志留在本地
type requestOnlyHandler struct {
	next log.Handler
}

func (h *requestOnlyHandler) Enabled(ctx context.Context, level log.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *requestOnlyHandler) Handle(ctx context.Context, r log.Record) error {
	if TraceID(ctx) == "" {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *requestOnlyHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &requestOnlyHandler{next: h.next.WithAttrs(attrs)}
}

func (h *requestOnlyHandler) WithGroup(name string) log.Handler {
	return &requestOnlyHandler{next: h.next.WithGroup(name)}
}
