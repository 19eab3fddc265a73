package middleware

import (
	"bytes"
	log "log/slog"
	"net/http"
	"strconv"
	"time"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/pagecache"

	"github.com/gin-gonic/gin"
)

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// CachePage 整页缓存 GET 200 响应，命中时原样返回；需在 AuthOptionalMiddleware 之后使用
func CachePage(store pagecache.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := pageCacheKey(c)

		entry, err := store.Get(ctx, key)
		if err != nil {
			log.WarnContext(ctx, "page cache read failed", "key", key, "err", err)
		}
		if entry != nil {
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if w.Status() != http.StatusOK {
			return
		}
		entry = &pagecache.Entry{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}
		if err = store.Set(ctx, key, entry, ttl); err != nil {
			log.WarnContext(ctx, "page cache write failed", "key", key, "err", err)
		}
	}
}

func pageCacheKey(c *gin.Context) string {
	var viewer uint64
	if v, ok := c.Get(consts.CtxUserID); ok {
		viewer, _ = v.(uint64)
	}
	return c.Request.Method + " " + c.Request.URL.RequestURI() + ":" + strconv.FormatUint(viewer, 10)
}
