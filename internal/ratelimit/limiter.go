package ratelimit

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/config"
)

const (
	defaultWindow = time.Minute
	defaultMax    = 30
)

// New builds the sliding-window limiter for the backend named in settings.
// The memory backend counts in process; redis shares counts between
// instances and needs a client.
func New(cfg config.RateLimitSettings, client redis.UniversalClient) (func(http.Handler) http.Handler, error) {
	window, max := cfg.Window, cfg.Max
	if window <= 0 {
		window = defaultWindow
	}
	if max <= 0 {
		max = defaultMax
	}

	opts := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByIP, KeyByRoutePattern),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			config.WriteError(w, r, apperr.TooManyRequests("Too many requests"))
		}),
	}

	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("rate limit backend redis requires REDIS_ADDR")
		}
		opts = append(opts, httprate.WithLimitCounter(NewRedisCounter(client)))
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}

	return httprate.Limit(max, window, opts...), nil
}
