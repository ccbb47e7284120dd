package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_REQUESTS", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if cfg.Limit != 30 {
		t.Errorf("Limit = %d, want 30", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %v, want 1m", cfg.Window)
	}
}

func TestLoadRateLimitConfigClampsWindow(t *testing.T) {
	cases := []struct {
		window string
		want   time.Duration
	}{
		{"500ms", time.Second},
		{"1ns", time.Second},
		{"-5s", time.Minute},
		{"junk", time.Second},
		{"2m", 2 * time.Minute},
	}
	for _, tc := range cases {
		t.Setenv("RATE_LIMIT_WINDOW", tc.window)
		if cfg := LoadRateLimitConfig(); cfg.Window != tc.want {
			t.Errorf("Window(%q) = %v, want %v", tc.window, cfg.Window, tc.want)
		}
	}
}

func TestLoadRateLimitConfigClampsLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "0")
	if cfg := LoadRateLimitConfig(); cfg.Limit != 1 {
		t.Errorf("Limit(0) = %d, want clamped to 1", cfg.Limit)
	}
	t.Setenv("RATE_LIMIT_REQUESTS", "-10")
	if cfg := LoadRateLimitConfig(); cfg.Limit != 1 {
		t.Errorf("Limit(-10) = %d, want clamped to 1", cfg.Limit)
	}
}
