package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/redis"
	"yatube/internal/pkg/response"
	"yatube/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

var (
	errTokenRevoked   = errors.New("token revoked")
	errSessionExpired = errors.New("session version outdated")
)

// AuthMiddleware 验证会话 cookie 中的 JWT，未登录时跳转到登录页并带上 next
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c)
		if err != nil {
			if !isAuthFailure(err) {
				response.Error(c, err)
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// LoginRedirectURL 登录页地址，next 中的 / 保持原样
func LoginRedirectURL(next string) string {
	escaped := url.QueryEscape(next)
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return consts.LoginURL + "?next=" + escaped
}

type authError struct {
	err error
}

func (e *authError) Error() string { return e.err.Error() }

func (e *authError) Unwrap() error { return e.err }

func isAuthFailure(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// authenticate 解析 cookie；凭证缺失、无效、已注销或会话已吊销返回 *authError，其余为基础设施错误
func authenticate(c *gin.Context) (*security.UserClaims, error) {
	token, err := c.Cookie(consts.SessionCookie)
	if err != nil || token == "" {
		return nil, &authError{err: errors.New("session cookie missing")}
	}

	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, &authError{err: err}
	}

	value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
	if err != nil {
		return nil, err
	}
	if value != "" {
		return nil, &authError{err: errTokenRevoked}
	}

	claims, err := security.ValidateToken(token)
	if err != nil {
		return nil, &authError{err: err}
	}

	// 修改密码或用户被删除后，旧 token 的会话版本落后
	version, err := redis.SessionVersion(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}
	if claims.SessionVersion < version {
		return nil, &authError{err: errSessionExpired}
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims *security.UserClaims) {
	c.Set(consts.CtxUserID, claims.UserID)
	c.Set(consts.CtxUsername, claims.Username)
	c.Set(consts.CtxRoles, claims.Roles)

	newCtx := context.WithValue(c.Request.Context(), consts.CtxUserID, claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}
