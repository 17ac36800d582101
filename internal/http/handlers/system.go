package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "imperial vip api çalışıyor"})
}

// DBCheck pings the database through ping.
func DBCheck(ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "veritabanı bağlı değil"})
			return
		}
		if err := ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "veritabanına ulaşılamıyor: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "veritabanı bağlantısı OK"})
	}
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router hazır değil"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
