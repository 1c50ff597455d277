package credgate

import (
	"errors"
	"time"

	"github.com/credgate/credgate/password"
	"github.com/credgate/credgate/ratelimit"
)

// Config carries every tunable of the pipeline. Config instances are
// configured once, validated by [Builder.Build], and treated as immutable
// for the process lifetime; the token signing secret in particular is never
// mutated after Build.
type Config struct {
	Token     TokenConfig
	Password  PasswordConfig
	Policy    password.Policy
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

// TokenConfig configures bearer-token issuance and verification.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Leeway time.Duration
}

// PasswordConfig holds the argon2id cost parameters.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// RateLimitScope selects which deployment preset guards the HTTP surface.
// Only one is active per deployment.
type RateLimitScope string

const (
	// ScopeAuthenticate budgets the registration and authenticate routes
	// individually (5 attempts per 5 minutes each).
	ScopeAuthenticate RateLimitScope = "authenticate"
	// ScopeAllPosts shares one budget across every POST under the API root
	// (15 attempts per 5 minutes).
	ScopeAllPosts RateLimitScope = "all-posts"
)

// RateLimitConfig selects the active throttling preset. Zero Total/Window
// fall back to the preset values for the scope.
//
// TrustProxyHeader opts in to keying budgets by the first X-Forwarded-For
// hop. Leave it false unless a trusted proxy in front of the server
// overwrites that header on every request; it is client-supplied otherwise
// and an attacker rotating it would dodge the budget entirely.
type RateLimitConfig struct {
	Scope            RateLimitScope
	Total            int
	Window           time.Duration
	TrustProxyHeader bool
}

// Policy resolves the configured scope into a concrete rate-limit policy.
func (c RateLimitConfig) Policy() ratelimit.Policy {
	var p ratelimit.Policy
	switch c.Scope {
	case ScopeAllPosts:
		p = ratelimit.GlobalPostPolicy()
	default:
		p = ratelimit.AuthPolicy()
	}
	if c.Total > 0 {
		p.Total = c.Total
	}
	if c.Window > 0 {
		p.Window = c.Window
	}
	return p
}

// MetricsConfig toggles the in-process counters and the verify-latency
// histogram.
type MetricsConfig struct {
	Enabled                bool
	EnableLatencyHistogram bool
}

// DefaultConfig returns the baseline configuration: 24h token TTL, the
// standard password policy, argon2id at interactive-server cost, and the
// strict authenticate rate-limit scope.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL: 24 * time.Hour,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Policy: password.DefaultPolicy(),
		RateLimit: RateLimitConfig{
			Scope: ScopeAuthenticate,
		},
		Metrics: MetricsConfig{
			Enabled:                true,
			EnableLatencyHistogram: true,
		},
	}
}

// Validate rejects configurations the pipeline cannot run with. It does not
// mutate the receiver.
func (c Config) Validate() error {
	if len(c.Token.Secret) == 0 {
		return errors.New("token signing secret required")
	}
	if c.Token.TTL < 0 {
		return errors.New("token TTL must not be negative")
	}
	switch c.RateLimit.Scope {
	case "", ScopeAuthenticate, ScopeAllPosts:
	default:
		return errors.New("unknown rate limit scope")
	}
	if c.RateLimit.Total < 0 {
		return errors.New("rate limit total must not be negative")
	}
	if c.RateLimit.Window < 0 {
		return errors.New("rate limit window must not be negative")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.Secret = cloneBytes(cfg.Token.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
