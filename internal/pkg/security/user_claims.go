package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin 管理员角色，对应 users.is_staff
const RoleAdmin = "ADMIN"

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID         uint64   `json:"user_id"`
	Username       string   `json:"username"`
	Roles          []string `json:"roles"`
	SessionVersion int64    `json:"sv,omitempty"` // 修改密码或删除用户后旧版本失效
	jwt.RegisteredClaims
}
