package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 身份系统在服务外部，这里只校验它签发的令牌并取出用户 ID

const userIDKey = "currentUserID"

// SignToken 签发 HS256 令牌，subject 为用户 ID（seed 工具和测试使用）
func SignToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// AuthOptional 有合法令牌则注入用户 ID，没有也放行
func AuthOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := parseToken(c, secret); id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// AuthRequired 未登录访问受限页时重定向到首页（与参考实现的 login_required 行为对齐）
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := parseToken(c, secret)
		if id == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// CurrentUserID 当前请求用户 ID，匿名为空串
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func parseToken(c *gin.Context, secret string) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return ""
	}
	return claims.Subject
}
