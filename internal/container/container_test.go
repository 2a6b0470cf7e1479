package container

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/testutil"
	"github.com/google/uuid"
)

func TestRouterWiring(t *testing.T) {
	db := testutil.NewDB(t, Models()...)

	s := config.Load()
	s.RateLimit = config.RateLimitSettings{Backend: "memory", Window: time.Minute, Max: 1}
	c, err := New(db, s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	h := c.Router()
	get := func(path string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := get("/healthz"); code != http.StatusOK {
		t.Fatalf("/healthz = %d", code)
	}
	if code := get("/api/users/me"); code != http.StatusUnauthorized {
		t.Fatalf("/api/users/me = %d", code)
	}
	if code := get("/api/technical/questions/"); code != http.StatusOK {
		t.Fatalf("/api/technical/questions/ = %d", code)
	}
	if code := get("/api/technical/questions/"); code != http.StatusTooManyRequests {
		t.Fatalf("second call on same route = %d, want 429", code)
	}
	if code := get("/api/discussions/" + uuid.NewString()); code != http.StatusNotFound {
		t.Fatalf("/api/discussions/{id} = %d, want 404", code)
	}
	if code := get("/api/discussions/" + uuid.NewString()); code != http.StatusTooManyRequests {
		t.Fatalf("other id on the same route pattern = %d, want 429", code)
	}
}

func TestNewRejectsRedisBackendWithoutAddr(t *testing.T) {
	s := config.Load()
	s.Redis.Addr = ""
	s.RateLimit.Backend = "redis"
	if _, err := New(testutil.NewDB(t), s); err == nil {
		t.Fatal("expected error")
	}
}
