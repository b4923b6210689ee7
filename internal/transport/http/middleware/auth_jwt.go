package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"mnavy-api/internal/apperr"
	"mnavy-api/internal/core/auth"
	"mnavy-api/internal/domain"
)

const KeyClaims = "claims"

// AuthJWT 认证：Bearer 解析 + 签名/过期校验 + 账号激活位检查。
// 停用账号的 token 签名仍然合法，但在这里被 401 拦下。
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if ah == "" || ah == "undefined" {
			abortWith(c, apperr.Unauthorized("Access denied. No token provided."))
			return
		}
		parts := strings.SplitN(ah, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortWith(c, apperr.Unauthorized("Access denied. No token provided."))
			return
		}

		claims, err := j.Parse(parts[1])
		if err != nil {
			abortWith(c, apperr.Unauthorized("Invalid token."))
			return
		}
		if !claims.Status {
			abortWith(c, apperr.Unauthorized("Account is inactive. Contact administrator."))
			return
		}

		c.Set(KeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin 应用管理员专属接口
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Identity(c)
		if claims == nil || !claims.IsAdmin || claims.UserType != domain.RoleAdmin {
			abortWith(c, apperr.Forbidden("Access denied."))
			return
		}
		c.Next()
	}
}

// RequireMaritimeRole 海事角色白名单（四类非管理员角色的子集）
func RequireMaritimeRole(allowed ...string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := Identity(c)
		if claims == nil {
			abortWith(c, apperr.Forbidden("Access denied."))
			return
		}
		if _, ok := set[claims.UserType]; !ok {
			abortWith(c, apperr.Forbidden("Access denied."))
			return
		}
		c.Next()
	}
}

// Identity 取出认证中间件写入的身份；未认证路径返回 nil
func Identity(c *gin.Context) *auth.Claims {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func abortWith(c *gin.Context, err *apperr.Error) {
	_ = c.Error(err)
	c.Abort()
}
