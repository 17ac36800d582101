package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strings"
	"time"

	"imperialvip/internal/cache"
	"imperialvip/internal/config"
	"imperialvip/internal/utils"

	"github.com/gin-gonic/gin"
)

// ResponseStore is the edge tier the output cache reads and writes.
type ResponseStore interface {
	Key(suffix string) string
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Store(ctx context.Context, key string, payload []byte, ttl time.Duration, tags ...string) error
}

// captureWriter copies the body while forwarding it to the client.
type captureWriter struct {
	gin.ResponseWriter
	buf   bytes.Buffer
	limit int
	over  bool
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.capture(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *captureWriter) capture(b []byte) {
	if w.over {
		return
	}
	if w.limit > 0 && w.buf.Len()+len(b) > w.limit {
		w.over = true
		w.buf.Reset()
		return
	}
	w.buf.Write(b)
}

// outputKey hashes method, path and query under the policy name.
func outputKey(policy string, r *http.Request) string {
	sum := sha1.Sum([]byte(r.Method + " " + r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", policy, sum)
}

// OutputCache serves GET responses from the edge tier. Responses are stored
// under the policy TTL and tagged with the policy name plus any extra tags.
// A nil store or a disabled config passes everything through.
func OutputCache(store ResponseStore, cfg config.CacheConfig, policy string, extraTags ...string) gin.HandlerFunc {
	if store == nil || !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	ttl := cfg.TTL(policy)
	tags := append([]string{policy}, extraTags...)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := store.Key(outputKey(policy, c.Request))

		bs, hit, err := store.Get(ctx, key)
		if err != nil {
			utils.LogWarn(GetRequestID(c), "cache", "edge_get", "edge cache read failed", err)
		}
		if hit {
			if status, hdr, body, ok := cache.DecodeResponse(bs); ok {
				for k, vals := range hdr {
					if strings.EqualFold(k, "Content-Length") || strings.EqualFold(k, requestIDHeader) {
						continue
					}
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Header("X-Cache", "HIT")
				c.Data(status, hdr.Get("Content-Type"), body)
				c.Abort()
				return
			}
		}

		cw := &captureWriter{ResponseWriter: c.Writer, limit: cfg.MaxBodyBytes}
		c.Writer = cw
		c.Header("X-Cache", "MISS")
		c.Next()

		if cw.Status() != http.StatusOK || cw.over {
			return
		}
		hdr := c.Writer.Header().Clone()
		hdr.Del("X-Cache")
		hdr.Del(requestIDHeader)
		payload, err := cache.EncodeResponse(cw.Status(), hdr, cw.buf.Bytes())
		if err != nil {
			return
		}
		if err := store.Store(context.WithoutCancel(ctx), key, payload, ttl, tags...); err != nil {
			utils.LogWarn(GetRequestID(c), "cache", "edge_store", "edge cache write failed", err)
		}
	}
}
