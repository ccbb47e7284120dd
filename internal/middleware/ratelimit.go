package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/wildtrail/booking-backend/internal/config"
)

// NewRateLimit returns a fixed-window rate limiter backed by Redis, keyed by
// client IP and route.  When Redis is unavailable or the limiter is disabled
// it becomes a no-op; a broken Redis at request time fails open so the
// booking flow never depends on the limiter being healthy.
func NewRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	windowMs := cfg.Window.Milliseconds()
	if windowMs < 1 {
		windowMs = time.Second.Milliseconds()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			window := time.Now().UnixMilli() / windowMs
			key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), window)

			ctx := c.Request().Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c) // fail open
			}
			if n == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if n > int64(cfg.Limit) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"success": false,
					"error":   "too many requests, slow down",
				})
			}
			return next(c)
		}
	}
}
