package api

import (
	"net/http"
	"testing"
	"time"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/trades", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	if w := do(t, r, http.MethodGet, "/swagger/index.html", ""); w.Code != http.StatusOK {
		t.Fatalf("swagger ui not mounted: %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestNewRouter_RateLimit(t *testing.T) {
	limited := NewRouter(newTestHandler(t), RouterConfig{RateLimitRPS: 1, RateLimitBurst: 2, RequestTimeout: time.Second})
	var last int
	for i := 0; i < 4; i++ {
		last = do(t, limited, http.MethodGet, "/api/v1/trades", "").Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last)
	}
}
