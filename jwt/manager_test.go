package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	mgr, err := NewManager(Config{Secret: testSecret(), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	token, err := mgr.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti claim")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected exp and iat claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("token lifetime = %v, want 1h", got)
	}
}

func TestDefaultTTLApplied(t *testing.T) {
	mgr, err := NewManager(Config{Secret: testSecret()})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	if mgr.TTL() != DefaultTTL {
		t.Fatalf("TTL = %v, want %v", mgr.TTL(), DefaultTTL)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	current := time.Now()
	clock := func() time.Time { return current }

	mgr, err := NewManager(Config{Secret: testSecret(), TTL: time.Minute, Now: clock})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	token, err := mgr.Issue("bob")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := mgr.Verify(token); err != nil {
		t.Fatalf("token should verify before expiry: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := mgr.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	issuer, err := NewManager(Config{Secret: testSecret(), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	verifier, err := NewManager(Config{Secret: []byte("another-secret-entirely-32bytes!"), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	token, err := issuer.Issue("carol")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong key, got %v", err)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	mgr, err := NewManager(Config{Secret: testSecret(), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	token, err := mgr.Issue("dave")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}

	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := mgr.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered payload, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	mgr, err := NewManager(Config{Secret: testSecret(), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := mgr.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Verify(%q): expected ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestForgedExpiredTokenReportsInvalid(t *testing.T) {
	// A token signed with the wrong key whose payload also carries a past
	// expiry must report invalid, not expired.
	current := time.Now()
	clock := func() time.Time { return current }

	forger, err := NewManager(Config{Secret: []byte("the-attackers-key-32-bytes-long!"), TTL: time.Minute, Now: clock})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	verifier, err := NewManager(Config{Secret: testSecret(), TTL: time.Minute, Now: clock})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	token, err := forger.Issue("mallory")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestIssuerEnforcedWhenConfigured(t *testing.T) {
	issuerA, err := NewManager(Config{Secret: testSecret(), TTL: time.Hour, Issuer: "svc-a"})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	issuerB, err := NewManager(Config{Secret: testSecret(), TTL: time.Hour, Issuer: "svc-b"})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	token, err := issuerA.Issue("erin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := issuerB.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}
	if _, err := issuerA.Verify(token); err != nil {
		t.Fatalf("expected matching issuer to verify: %v", err)
	}
}

func TestNewManagerRejectsBadConfig(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("expected missing secret to be rejected")
	}
	if _, err := NewManager(Config{Secret: testSecret(), TTL: -time.Hour}); err == nil {
		t.Fatal("expected negative TTL to be rejected")
	}
	if _, err := NewManager(Config{Secret: testSecret(), Leeway: 3 * time.Minute}); err == nil {
		t.Fatal("expected oversized leeway to be rejected")
	}
}
