package middleware

import (
	"net/http"
	"strings"

	"Wave_Social/internal/pkg"
	"Wave_Social/internal/service"

	"github.com/gin-gonic/gin"
)

const ContextUserKey = "current_user"

func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := pkg.ParseAccess(secret, parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, service.CurrentUser{
			UserID:      claims.UserID,
			UID:         claims.UID,
			Username:    claims.Username,
			Email:       claims.Email,
			AvatarColor: claims.AvatarColor,
		})
		c.Next()
	}
}

// CurrentUser 取中间件注入的请求方身份
func CurrentUser(c *gin.Context) service.CurrentUser {
	v, _ := c.Get(ContextUserKey)
	u, _ := v.(service.CurrentUser)
	return u
}
