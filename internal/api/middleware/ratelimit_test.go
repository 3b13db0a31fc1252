package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/infrastructure/db/redis"
)

type stubLimiter struct {
	decision redis.Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (redis.Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func serveLimited(t *testing.T, limiter Limiter) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.POST("/api/token", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(limiter, "rl", zerolog.Nop()))

	req := httptest.NewRequest(http.MethodPost, "/api/token", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{decision: redis.Decision{Allowed: true, Limit: 10, Remaining: 9}}
	rec := serveLimited(t, limiter)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "9" {
		t.Errorf("unexpected remaining header %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "rl:ip:203.0.113.7:route:POST /api/token" {
		t.Errorf("unexpected key %v", limiter.keys)
	}
}

func TestRateLimit_Blocked(t *testing.T) {
	limiter := &stubLimiter{decision: redis.Decision{Allowed: false, Limit: 10, RetryAfter: 1500 * time.Millisecond}}
	rec := serveLimited(t, limiter)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "2" {
		t.Errorf("expected Retry-After 2, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rec := serveLimited(t, &stubLimiter{err: errors.New("redis down")})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when the limiter errors, got %d", rec.Code)
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	rec := serveLimited(t, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
