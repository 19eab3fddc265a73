package middleware

import (
	log "log/slog"
	"net/http"
	"net/url"
	"time"
	"yatube/internal/pkg/consts"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware 记录管理操作：谁、对哪个路径、提交了什么、结果如何
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		startTime := time.Now()

		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}

		// 管理表单不含密码，可以整体记录
		form := url.Values{}
		if c.Request.PostForm != nil {
			form = c.Request.PostForm
		}

		log.InfoContext(ctx, "Admin Action",
			log.String("username", c.GetString(consts.CtxUsername)),
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("form", form.Encode()),
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
		)
	}
}
