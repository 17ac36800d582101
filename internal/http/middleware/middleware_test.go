package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"imperialvip/internal/config"
	"imperialvip/internal/services"
	"imperialvip/internal/utils"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRequestIDKeepsCallerValue(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var fromCtx string
	r.GET("/x", func(c *gin.Context) {
		fromCtx = utils.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("header = %q", got)
	}
	if fromCtx != "abc-123" {
		t.Fatalf("context id = %q", fromCtx)
	}
}

func TestRequestIDReplacesOversizedValue(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 200))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	got := w.Header().Get("X-Request-ID")
	if got == "" || len(got) > maxRequestIDLen {
		t.Fatalf("expected generated id, got %q", got)
	}
}

type stubVerifier struct{}

func (stubVerifier) Verify(raw string) (services.AdminClaims, error) {
	if raw == "good" {
		return services.AdminClaims{AdminID: 7, Username: "ops"}, nil
	}
	return services.AdminClaims{}, services.ErrInvalidToken
}

func TestAdminAuth(t *testing.T) {
	r := gin.New()
	r.Use(AdminAuth(stubVerifier{}))
	r.GET("/admin", func(c *gin.Context) { c.String(http.StatusOK, AdminUsername(c)) })

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "unauthorized"},
		{"not bearer", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, "unauthorized"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "invalid_token"},
		{"ok", "Bearer good", http.StatusOK, "ops"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if !strings.Contains(w.Body.String(), tc.body) {
				t.Fatalf("body %q does not contain %q", w.Body.String(), tc.body)
			}
		})
	}
}

type memStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	tags  map[string][]string
	ttls  map[string]time.Duration
	fail  bool
	reads int
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, tags: map[string][]string{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Key(suffix string) string { return "test:" + suffix }

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.fail {
		return nil, false, errors.New("redis down")
	}
	bs, ok := m.data[key]
	return bs, ok, nil
}

func (m *memStore) Store(_ context.Context, key string, payload []byte, ttl time.Duration, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("redis down")
	}
	m.data[key] = payload
	m.tags[key] = tags
	m.ttls[key] = ttl
	return nil
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		MaxBodyBytes: 1 << 10,
		Policies:     map[string]time.Duration{config.PolicyRegions: 30 * time.Minute},
	}
}

func TestOutputCacheMissThenHit(t *testing.T) {
	store := newMemStore()
	calls := 0
	r := gin.New()
	r.GET("/regions", OutputCache(store, cacheCfg(), config.PolicyRegions, config.PolicyHomePage), func(c *gin.Context) {
		calls++
		c.Header("X-Custom", "yes")
		c.JSON(http.StatusOK, gin.H{"n": calls})
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/regions?page=1", nil))
		return w
	}

	first := get()
	if first.Header().Get("X-Cache") != "MISS" || calls != 1 {
		t.Fatalf("first: X-Cache=%q calls=%d", first.Header().Get("X-Cache"), calls)
	}
	second := get()
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second: X-Cache=%q", second.Header().Get("X-Cache"))
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times", calls)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", second.Body.String(), first.Body.String())
	}
	if second.Header().Get("X-Custom") != "yes" {
		t.Fatal("stored headers not restored")
	}
	for key, tags := range store.tags {
		if strings.Join(tags, ",") != "regions,homepage" {
			t.Fatalf("tags = %v", tags)
		}
		if store.ttls[key] != 30*time.Minute {
			t.Fatalf("ttl = %v", store.ttls[key])
		}
	}
}

func TestOutputCacheSkipsErrorsAndLargeBodies(t *testing.T) {
	store := newMemStore()
	r := gin.New()
	cfg := cacheCfg()
	r.GET("/missing", OutputCache(store, cfg, config.PolicyRegions), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.GET("/big", OutputCache(store, cfg, config.PolicyRegions), func(c *gin.Context) {
		c.String(http.StatusOK, strings.Repeat("x", cfg.MaxBodyBytes+1))
	})

	for _, path := range []string{"/missing", "/big"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if path == "/big" && w.Body.Len() != cfg.MaxBodyBytes+1 {
			t.Fatalf("client body truncated: %d", w.Body.Len())
		}
	}
	if store.len() != 0 {
		t.Fatalf("stored %d entries", store.len())
	}
}

func TestOutputCachePassThrough(t *testing.T) {
	store := newMemStore()
	r := gin.New()
	r.POST("/contact", OutputCache(store, cacheCfg(), config.PolicyStatic), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	disabled := cacheCfg()
	disabled.Enabled = false
	r.GET("/off", OutputCache(store, disabled, config.PolicyStatic), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/nil", OutputCache(nil, cacheCfg(), config.PolicyStatic), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/contact"}, {http.MethodGet, "/off"}, {http.MethodGet, "/nil"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Header().Get("X-Cache") != "" {
			t.Fatalf("%s %s: unexpected X-Cache %q", tc.method, tc.path, w.Header().Get("X-Cache"))
		}
	}
	if store.reads != 0 || store.len() != 0 {
		t.Fatalf("store touched: reads=%d entries=%d", store.reads, store.len())
	}
}

func TestOutputCacheStoreFailureStillServes(t *testing.T) {
	store := newMemStore()
	store.fail = true
	r := gin.New()
	r.GET("/g", OutputCache(store, cacheCfg(), config.PolicyGallery), func(c *gin.Context) {
		c.String(http.StatusOK, "fresh")
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/g", nil))
	if w.Code != http.StatusOK || w.Body.String() != "fresh" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestNoStore(t *testing.T) {
	r := gin.New()
	r.GET("/rates", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rates", nil))
	if !strings.Contains(w.Header().Get("Cache-Control"), "no-store") {
		t.Fatalf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}
}
