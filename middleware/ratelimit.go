package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/credgate/credgate"
	"github.com/credgate/credgate/ratelimit"
)

const msgRateLimited = "Rate limit exceeded"

// RateLimit throttles requests by caller address against the limiter's
// policy. Over-budget requests get 429 with the fixed JSON envelope. A
// counter-store outage rejects with 500 rather than waving traffic through
// an exhausted budget (fail closed).
//
// trustProxy controls whether X-Forwarded-For participates in the throttling
// key. It must stay false unless every request passes through a proxy that
// overwrites the header; the header is caller-supplied and rotating it would
// otherwise hand each attempt a fresh budget.
func RateLimit(limiter *ratelimit.Limiter, metrics *credgate.Metrics, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			ok, err := limiter.Allow(r.Context(), clientAddr(r, trustProxy), r.Method)
			if err != nil {
				metrics.Inc(credgate.MetricInternalError)
				writeFailure(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !ok {
				metrics.Inc(credgate.MetricRateLimitHit)
				writeFailure(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr derives the throttling key: an explicit context override wins,
// then the first X-Forwarded-For hop when the deployment trusts its proxy,
// then the connection's remote host. Usernames are never used; they are
// unauthenticated at this point.
func clientAddr(r *http.Request, trustProxy bool) string {
	if ip := credgate.ClientIPFromContext(r.Context()); ip != "" {
		return ip
	}

	if fwd := r.Header.Get("X-Forwarded-For"); trustProxy && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
