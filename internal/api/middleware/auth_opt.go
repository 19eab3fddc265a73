package middleware

import (
	log "log/slog"
	"yatube/internal/pkg/consts"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，失败或缺失则 user_id 为 0
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c)
		if err != nil {
			if !isAuthFailure(err) {
				log.WarnContext(c.Request.Context(), "optional auth failed, continuing anonymously", "err", err)
			}
			c.Set(consts.CtxUserID, uint64(0))
			c.Next()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}
