package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "imperialvip/internal/config"
	"imperialvip/internal/services"

	"github.com/gin-gonic/gin"
)

type rejectAll struct{}

func (rejectAll) Verify(string) (services.AdminClaims, error) {
	return services.AdminClaims{}, services.ErrInvalidToken
}

func testRouter(ping func(context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Deps{
		Env:    intconfig.Env{WebRoot: "testdata"},
		Tokens: rejectAll{},
		Ping:   ping,
	})
}

func TestRouterSystemRoutes(t *testing.T) {
	r := testRouter(func(context.Context) error { return errors.New("down") })

	cases := []struct {
		path   string
		status int
	}{
		{"/api/health", http.StatusOK},
		{"/api/db-check", http.StatusServiceUnavailable},
		{"/api/routes", http.StatusOK},
		{"/nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.status {
			t.Fatalf("%s: status %d, want %d", tc.path, w.Code, tc.status)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: missing request id", tc.path)
		}
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	r := testRouter(nil)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/reservations"},
		{http.MethodPut, "/api/admin/rates"},
		{http.MethodDelete, "/api/admin/vehicles/1"},
		{http.MethodPost, "/api/admin/gallery"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer forged")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status %d", tc.method, tc.path, w.Code)
		}
		if w.Header().Get("Cache-Control") == "" {
			t.Fatalf("%s %s: admin response is cacheable", tc.method, tc.path)
		}
	}
}

func TestRouterItineraryIsAdminOnly(t *testing.T) {
	r := testRouter(nil)
	for _, rt := range r.Routes() {
		if rt.Path == "/api/:lang/reservations/:id/pdf" {
			t.Fatalf("public itinerary route mounted: %s %s", rt.Method, rt.Path)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tr/reservations/1/pdf", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("public pdf: status %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/reservations/1/pdf", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("admin pdf without token: status %d, want 401", w.Code)
	}
}
