package middleware

import (
	"context"
	"yatube/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// TraceMiddleware 沿用上游传入的合法 uuid，否则生成新的 trace id
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.NewString()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.TraceIDKey, traceID))
		c.Header(traceHeader, traceID)
		c.Next()
	}
}
