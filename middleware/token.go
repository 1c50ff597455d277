package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/credgate/credgate"
	"github.com/credgate/credgate/jwt"
)

const (
	msgNoToken     = "No token provided."
	msgBadToken    = "Failed to authenticate token."
	tokenHeader    = "x-access-token"
	maxPeekedBody  = 1 << 20 // 1 MB
	tokenFieldName = "token"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the claims attached by [RequireToken].
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.Claims)
	return claims, ok
}

// RequireToken gates protected routes. The token is taken from, in priority
// order, the JSON body field "token", the query parameter "token", and the
// "x-access-token" header. A missing token rejects with 403 and a fixed
// message; an invalid or expired token rejects with 403 and one shared
// message, so callers cannot tell the two apart.
//
// On success the decoded claims are attached to the request context for
// [ClaimsFromContext].
func RequireToken(pipe *credgate.Pipeline) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pipe == nil {
				writeFailure(w, http.StatusForbidden, msgBadToken)
				return
			}

			token := extractToken(r)
			if token == "" {
				writeFailure(w, http.StatusForbidden, msgNoToken)
				return
			}

			claims, err := pipe.VerifyToken(token)
			if err != nil {
				writeFailure(w, http.StatusForbidden, msgBadToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken checks body, query, then header. The body is read at most
// once and restored so the downstream handler can decode it again.
func extractToken(r *http.Request) string {
	if token := tokenFromBody(r); token != "" {
		return token
	}
	if token := r.URL.Query().Get(tokenFieldName); token != "" {
		return token
	}
	return r.Header.Get(tokenHeader)
}

func tokenFromBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPeekedBody))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return payload.Token
}
