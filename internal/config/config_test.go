package config_test

import (
	"testing"
	"time"

	"github.com/crackit360/crackit360-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("RATE_LIMIT_MAX", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("RATE_LIMIT_BACKEND", "")

	s := config.Load()
	if s.RateLimit.Window != 60*time.Second {
		t.Errorf("window = %v, want 60s", s.RateLimit.Window)
	}
	if s.RateLimit.Max != 30 {
		t.Errorf("max = %d, want 30", s.RateLimit.Max)
	}
	if s.RateLimit.Backend != "memory" {
		t.Errorf("backend = %q, want memory", s.RateLimit.Backend)
	}
	if s.AccessTokenTTL != time.Hour {
		t.Errorf("access ttl = %v, want 1h", s.AccessTokenTTL)
	}
	if s.Judge.Timeout != 30*time.Second {
		t.Errorf("judge timeout = %v, want 30s", s.Judge.Timeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_BACKEND", "Redis")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("USE_REAL_EMAIL", "true")
	t.Setenv("FRONTEND_URL", "https://crackit360.example/")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	s := config.Load()
	if s.RateLimit.Backend != "redis" {
		t.Errorf("backend = %q", s.RateLimit.Backend)
	}
	if s.RateLimit.Max != 5 {
		t.Errorf("max = %d", s.RateLimit.Max)
	}
	if !s.SMTP.Enabled {
		t.Errorf("expected real email enabled")
	}
	if s.FrontendURL != "https://crackit360.example" {
		t.Errorf("frontend url = %q", s.FrontendURL)
	}
	if len(s.AllowedOrigins) != 2 || s.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", s.AllowedOrigins)
	}
}
