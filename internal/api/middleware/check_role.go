package middleware

import (
	"slices"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有至少一个指定的角色，需在 AuthMiddleware 之后使用
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(consts.CtxRoles)

		hasPermission := slices.ContainsFunc(requiredRoles, func(required string) bool {
			return slices.Contains(roles, required)
		})
		if !hasPermission {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
