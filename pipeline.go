package credgate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/credgate/credgate/jwt"
	"github.com/credgate/credgate/password"
	"github.com/credgate/credgate/ratelimit"
)

// Pipeline orchestrates password policy evaluation, digest hashing and
// verification, token issuance, and token verification. Pipeline methods are
// safe to call from multiple goroutines after construction through
// [Builder.Build]; each request's work is independent except for the shared
// user store and rate-limit counters.
//
// Hashing is CPU-bound by design. Callers running their own dispatch loop
// should invoke Register and Login from per-request goroutines so a slow
// hash never blocks unrelated requests; under net/http this is the default.
type Pipeline struct {
	config  Config
	users   UserRepository
	policy  password.Policy
	hasher  *password.Argon2
	tokens  *jwt.Manager
	store   ratelimit.Store
	limiter *ratelimit.Limiter
	metrics *Metrics
}

// Register creates a new account. It returns [ErrUsernameRequired] for an
// empty username, [ErrDuplicateUser] when the username exists, a
// [*PolicyError] when the password fails the strength rules, and an error
// wrapping [ErrInternal] for hasher or repository failures. No token is
// issued; registration does not log the user in.
func (p *Pipeline) Register(ctx context.Context, input RegisterInput) error {
	if p == nil || p.users == nil {
		return ErrPipelineNotReady
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return ErrUsernameRequired
	}

	// Point read; a concurrent registration of the same name is resolved by
	// the repository's uniqueness constraint on Save.
	if _, err := p.users.FindByUsername(ctx, username); err == nil {
		p.metrics.Inc(MetricRegisterDuplicate)
		return ErrDuplicateUser
	} else if !errors.Is(err, ErrUserNotFound) {
		p.metrics.Inc(MetricInternalError)
		return fmt.Errorf("%w: user lookup failed", ErrInternal)
	}

	if result := p.policy.Evaluate(input.Password); !result.Accepted {
		p.metrics.Inc(MetricRegisterPolicyRejected)
		return &PolicyError{Violations: result.Violations}
	}

	digest, err := p.hasher.Hash(input.Password)
	if err != nil {
		p.metrics.Inc(MetricInternalError)
		return fmt.Errorf("%w: password hashing failed", ErrInternal)
	}

	record := UserRecord{
		Username:       username,
		PasswordDigest: digest,
		Email:          input.Email,
		CreatedAt:      time.Now(),
	}
	if err := p.users.Save(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			p.metrics.Inc(MetricRegisterDuplicate)
			return ErrDuplicateUser
		}
		p.metrics.Inc(MetricInternalError)
		return fmt.Errorf("%w: user persistence failed", ErrInternal)
	}

	p.metrics.Inc(MetricRegisterSuccess)
	return nil
}

// Login authenticates the username/password pair and mints a bearer token
// on success. Absent users fail with [ErrUserNotFound] and mismatches with
// [ErrWrongPassword]. Both conditions are exposed to the caller as distinct
// messages; the HTTP contract requires keeping them apart.
func (p *Pipeline) Login(ctx context.Context, username, candidate string) (*LoginResult, error) {
	if p == nil || p.users == nil {
		return nil, ErrPipelineNotReady
	}

	user, err := p.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			p.metrics.Inc(MetricLoginFailure)
			return nil, ErrUserNotFound
		}
		p.metrics.Inc(MetricInternalError)
		return nil, fmt.Errorf("%w: user lookup failed", ErrInternal)
	}

	ok, err := p.hasher.Verify(candidate, user.PasswordDigest)
	if err != nil {
		// Malformed digest in the store, or the hasher itself failed. Either
		// way this is not a caller problem.
		p.metrics.Inc(MetricInternalError)
		return nil, fmt.Errorf("%w: password verification failed", ErrInternal)
	}
	if !ok {
		p.metrics.Inc(MetricLoginFailure)
		return nil, ErrWrongPassword
	}

	token, err := p.tokens.Issue(user.Username)
	if err != nil {
		p.metrics.Inc(MetricInternalError)
		return nil, fmt.Errorf("%w: token issuance failed", ErrInternal)
	}

	p.metrics.Inc(MetricLoginSuccess)
	p.metrics.Inc(MetricTokenIssued)
	return &LoginResult{Token: token, Subject: user.Username}, nil
}

// VerifyToken checks the token's signature and expiry and returns the
// decoded claims. Failures are [jwt.ErrTokenExpired] or [jwt.ErrTokenInvalid]
// only; no other detail is distinguishable by the caller. Verification is
// stateless. No store of issued tokens exists, so a token cannot be revoked
// before its natural expiry.
func (p *Pipeline) VerifyToken(token string) (*jwt.Claims, error) {
	if p == nil || p.tokens == nil {
		return nil, ErrPipelineNotReady
	}

	start := time.Now()
	claims, err := p.tokens.Verify(token)
	p.metrics.Observe(MetricVerifyLatency, time.Since(start))
	if err != nil {
		p.metrics.Inc(MetricTokenVerifyFailure)
		return nil, err
	}

	p.metrics.Inc(MetricTokenVerifySuccess)
	return claims, nil
}

// Usernames lists every registered username. Digests and emails never leave
// the repository through this path.
func (p *Pipeline) Usernames(ctx context.Context) ([]string, error) {
	if p == nil || p.users == nil {
		return nil, ErrPipelineNotReady
	}
	names, err := p.users.ListUsernames(ctx)
	if err != nil {
		p.metrics.Inc(MetricInternalError)
		return nil, fmt.Errorf("%w: user listing failed", ErrInternal)
	}
	return names, nil
}

// Config returns a copy of the active configuration.
func (p *Pipeline) Config() Config {
	if p == nil {
		return Config{}
	}
	return cloneConfig(p.config)
}

// RateLimiter returns the limiter built from the configured scope.
func (p *Pipeline) RateLimiter() *ratelimit.Limiter {
	if p == nil {
		return nil
	}
	return p.limiter
}

// RateLimitStore exposes the shared counter store so callers can derive
// additional per-route limiters against the same backend.
func (p *Pipeline) RateLimitStore() ratelimit.Store {
	if p == nil {
		return nil
	}
	return p.store
}

// Metrics returns the pipeline's counter set.
func (p *Pipeline) Metrics() *Metrics {
	if p == nil {
		return nil
	}
	return p.metrics
}

// MetricsSnapshot returns a point-in-time copy of all counters, for
// exporters.
func (p *Pipeline) MetricsSnapshot() MetricsSnapshot {
	if p == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}, Histograms: map[MetricID][]uint64{}}
	}
	return p.metrics.Snapshot()
}
