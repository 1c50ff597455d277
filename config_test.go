package credgate

import (
	"testing"
	"time"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Token.Secret = []byte("0123456789abcdef0123456789abcdef")
	return cfg
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing secret to be rejected")
	}

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRejectsUnknownScope(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Scope = "everything"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown scope to be rejected")
	}
}

func TestRateLimitPolicyPresets(t *testing.T) {
	strict := RateLimitConfig{Scope: ScopeAuthenticate}.Policy()
	if strict.Total != 5 || strict.Window != 5*time.Minute {
		t.Fatalf("unexpected strict preset: %+v", strict)
	}

	blanket := RateLimitConfig{Scope: ScopeAllPosts}.Policy()
	if blanket.Total != 15 || blanket.Window != 5*time.Minute || !blanket.AppliesTo("POST") || blanket.AppliesTo("GET") {
		t.Fatalf("unexpected blanket preset: %+v", blanket)
	}
}

func TestRateLimitPolicyOverrides(t *testing.T) {
	p := RateLimitConfig{Scope: ScopeAuthenticate, Total: 9, Window: time.Minute}.Policy()
	if p.Total != 9 || p.Window != time.Minute {
		t.Fatalf("overrides not applied: %+v", p)
	}
}

func TestDefaultConfigShape(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Token.TTL != 24*time.Hour {
		t.Fatalf("default TTL = %v, want 24h", cfg.Token.TTL)
	}
	if cfg.RateLimit.Scope != ScopeAuthenticate {
		t.Fatalf("default scope = %q, want authenticate", cfg.RateLimit.Scope)
	}
	if cfg.Policy.MinLength != 6 || cfg.Policy.MaxRun != 3 {
		t.Fatalf("unexpected default policy: %+v", cfg.Policy)
	}
}
