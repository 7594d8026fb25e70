package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key the resolved user identity is
// stored under.
const UserIDKey = "userID"

// IdentityMiddleware extracts the caller identity set by the gateway's
// auth layer. Authentication itself happens upstream; this service
// only consumes the resulting opaque user id.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing user identity",
			})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the identity stored by IdentityMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
