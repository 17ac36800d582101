package middleware

import (
	"net/http"
	"strings"

	"imperialvip/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	adminIDKey       = "admin_id"
	adminUsernameKey = "admin_username"
)

// TokenVerifier validates an admin bearer token.
type TokenVerifier interface {
	Verify(raw string) (services.AdminClaims, error)
}

// AdminAuth rejects requests without a valid "Authorization: Bearer" token and
// stores the admin id and username on the context.
func AdminAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "oturum açmanız gerekiyor",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		claims, err := v.Verify(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      err.Error(),
				"code":       "invalid_token",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(adminIDKey, claims.AdminID)
		c.Set(adminUsernameKey, claims.Username)
		c.Next()
	}
}

// AdminUsername returns the authenticated admin, or "".
func AdminUsername(c *gin.Context) string {
	return c.GetString(adminUsernameKey)
}

// NoStore marks responses as never cacheable by browsers or proxies.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
