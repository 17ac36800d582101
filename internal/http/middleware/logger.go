package middleware

import (
	"time"

	"imperialvip/internal/utils"

	"github.com/gin-gonic/gin"
)

// Logger writes one access log line per request including request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		utils.LogHTTP(GetRequestID(c), c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
