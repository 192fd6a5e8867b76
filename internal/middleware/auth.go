package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/kartik0209/music-backend/pkg/errors"
	"github.com/kartik0209/music-backend/pkg/httputil"
	"github.com/kartik0209/music-backend/pkg/jwt"
)

// Auth requires a valid bearer token and stores the acting user in the
// context under "user_id".
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httputil.ErrorResponse(c, apierrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			httputil.ErrorResponse(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuth extracts the acting user when a valid token is present
// and lets anonymous requests through. Public playlist reads use it:
// the permission check downstream treats the missing user as anonymous.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := manager.ValidateToken(token); err == nil {
				c.Set("user_id", claims.UserID)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
