package ratelimit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// KeyByRoutePattern keys on the method and the route pattern the request
// will match, so /discussions/a/vote and /discussions/b/vote share a
// bucket. Group middleware runs before routing finishes, so the pattern is
// resolved against the root router. Unmatched requests fall back to the
// raw path.
func KeyByRoutePattern(r *http.Request) (string, error) {
	pattern := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.Routes != nil {
		tctx := chi.NewRouteContext()
		if rctx.Routes.Match(tctx, r.Method, r.URL.Path) {
			pattern = tctx.RoutePattern()
		}
	}
	return r.Method + " " + pattern, nil
}
