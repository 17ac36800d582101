package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// allowedOrigins reads CORS_ALLOWED_ORIGINS (comma separated).
func allowedOrigins() []string {
	env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if env == "" {
		return defaultOrigins
	}
	out := []string{}
	for _, o := range strings.Split(env, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader, "X-Cache", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
