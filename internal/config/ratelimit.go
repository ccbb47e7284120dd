package config

import "time"

// RateLimitConfig controls the fixed-window limiter applied to the public
// booking-create endpoint.  Limit is the number of requests allowed per
// Window for a single client IP.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig
// with sane fallbacks for unparsable values.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   atoi(getenv("RATE_LIMIT_REQUESTS", "30")),
		Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m")),
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	// The limiter buckets time by whole windows; anything shorter than a
	// second is meaningless for a per-IP booking limit.
	if cfg.Window < time.Second {
		cfg.Window = time.Second
	}
	return cfg
}
