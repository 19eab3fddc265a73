package security

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"yatube/internal/api/config"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "yatube"

var (
	jwtSecret         = []byte("yatube-dev-secret")
	jwtExpirationTime = time.Hour * 24
)

// Init 使用配置中的密钥与过期时间
func Init(cfg config.SecurityConfig) {
	if cfg.JWTSecret != "" {
		jwtSecret = []byte(cfg.JWTSecret)
	}
	if cfg.JWTExpiration > 0 {
		jwtExpirationTime = time.Duration(cfg.JWTExpiration) * time.Hour
	}
}

// TokenTTL token 有效期
func TokenTTL() time.Duration {
	return jwtExpirationTime
}

// GenerateSessionToken 生成携带会话版本的 JWT Token
func GenerateSessionToken(userID uint64, username string, roles []string, sessionVersion int64) (string, error) {
	now := time.Now()

	claims := &UserClaims{
		UserID:         userID,
		Username:       username,
		Roles:          roles,
		SessionVersion: sessionVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtExpirationTime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken 验证 Token 字符串并解析出 Claims
func ValidateToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is invalid or expired")
	}

	return claims, nil
}

// ExtractSignature 从 Token 字符串中提取签名
func ExtractSignature(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return "", errors.New("malformed token")
	}
	return parts[2], nil
}
