package middleware

import (
	"net/http"
	"strings"

	"Aura_Community/internal/pkg"
	"Aura_Community/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// AuthMiddleware 校验 Bearer token。
// 未携带token -> 401；token非法/过期/被顶号 -> 403。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		tokenStr := parts[1]
		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		// redis侧校验是否仍是当前有效会话
		if redis.Client != nil {
			userRep := &redis.UserRepository{}
			originToken, err := userRep.GetUserToken(claims.UserID)
			if err != nil || originToken != tokenStr {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
				return
			}
			// 校验通过后滑动续期
			if err = userRep.ExtendUserToken(claims.UserID); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
