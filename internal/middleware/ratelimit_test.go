package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/wildtrail/booking-backend/internal/config"
)

func runRateLimit(t *testing.T, cfg config.RateLimitConfig, rdb *redis.Client) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/booking/create", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	if err := NewRateLimit(cfg, rdb)(next)(c); err != nil {
		t.Fatalf("middleware returned %v", err)
	}
	return rec, reached
}

func TestRateLimitNoopWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: time.Minute}
	rec, reached := runRateLimit(t, cfg, nil)
	if !reached || rec.Code != http.StatusOK {
		t.Errorf("reached = %v status = %d, want pass-through without redis", reached, rec.Code)
	}
}

func TestRateLimitNoopWhenDisabled(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, Limit: 1, Window: time.Minute}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	rec, reached := runRateLimit(t, cfg, rdb)
	if !reached || rec.Code != http.StatusOK {
		t.Errorf("reached = %v status = %d, want pass-through when disabled", reached, rec.Code)
	}
}

func TestRateLimitSubSecondWindowFailsOpen(t *testing.T) {
	// A half-second window must neither panic the request path nor block it;
	// with the counter store unreachable the limiter lets traffic through.
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: 500 * time.Millisecond, Prefix: "rl"}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	rec, reached := runRateLimit(t, cfg, rdb)
	if !reached || rec.Code != http.StatusOK {
		t.Errorf("reached = %v status = %d, want fail-open", reached, rec.Code)
	}
}

func TestRateLimitZeroWindowFailsOpen(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: 0, Prefix: "rl"}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	rec, reached := runRateLimit(t, cfg, rdb)
	if !reached || rec.Code != http.StatusOK {
		t.Errorf("reached = %v status = %d, want fail-open", reached, rec.Code)
	}
}
