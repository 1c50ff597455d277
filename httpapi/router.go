package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/credgate/credgate"
	"github.com/credgate/credgate/metrics/export/prometheus"
	"github.com/credgate/credgate/middleware"
	"github.com/credgate/credgate/ratelimit"
)

// NewRouter mounts the full contractual surface onto a ServeMux.
//
// Throttling follows the configured scope: under [credgate.ScopeAuthenticate]
// the create and authenticate routes each get their own strict budget
// (separate counter namespaces over the shared store); under
// [credgate.ScopeAllPosts] one blanket POST budget wraps every route and the
// policy's method filter lets reads through.
func NewRouter(pipe *credgate.Pipeline, logger *zap.Logger) (http.Handler, error) {
	handlers := NewHandlers(pipe, logger)
	metrics := pipe.Metrics()
	cfg := pipe.Config()

	mux := http.NewServeMux()

	mux.Handle("POST /create", limited(cfg, pipe, "create", metrics, http.HandlerFunc(handlers.Create)))
	mux.Handle("POST /authenticate", limited(cfg, pipe, "authenticate", metrics, http.HandlerFunc(handlers.Authenticate)))

	// The token gate covers the whole /api/ subtree, so an unknown path under
	// it is still challenged for a token before any routing decision shows.
	api := http.NewServeMux()
	api.Handle("GET /api/check", http.HandlerFunc(handlers.Check))
	api.Handle("GET /api/users", http.HandlerFunc(handlers.Users))
	mux.Handle("/api/", limited(cfg, pipe, "", metrics, middleware.RequireToken(pipe)(api)))

	if cfg.Metrics.Enabled {
		metricsHandler, err := prometheus.Handler(pipe)
		if err != nil {
			return nil, err
		}
		mux.Handle("GET /metrics", metricsHandler)
	}

	return mux, nil
}

// limited wraps next in the rate-limit middleware appropriate for the scope.
// Under the strict scope only the named credential routes are budgeted; the
// blanket scope throttles every route through one shared limiter.
func limited(cfg credgate.Config, pipe *credgate.Pipeline, bucket string, metrics *credgate.Metrics, next http.Handler) http.Handler {
	switch cfg.RateLimit.Scope {
	case credgate.ScopeAllPosts:
		return middleware.RateLimit(pipe.RateLimiter(), metrics, cfg.RateLimit.TrustProxyHeader)(next)
	default:
		if bucket == "" {
			return next
		}
		limiter := ratelimit.New(pipe.RateLimitStore(), cfg.RateLimit.Policy().Named(bucket))
		return middleware.RateLimit(limiter, metrics, cfg.RateLimit.TrustProxyHeader)(next)
	}
}
