package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned by Verify for a structurally valid,
	// correctly signed token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned by Verify for every other failure: bad
	// signature, malformed structure, wrong algorithm, or missing expiry.
	// Callers can distinguish only these two kinds.
	ErrTokenInvalid = errors.New("token invalid")
)

// Config configures a [Manager]. Secret is the HS256 signing key, supplied
// once at construction and treated as immutable for the process lifetime.
type Config struct {
	Secret []byte
	// TTL is the token lifetime. Zero means the 24 hour default.
	TTL    time.Duration
	Issuer string
	// Leeway tolerates clock skew between issuer and verifier, at most two
	// minutes.
	Leeway time.Duration
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// DefaultTTL is the token lifetime applied when Config.TTL is zero.
const DefaultTTL = 24 * time.Hour

// Claims is the decoded token payload. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 bearer tokens. Safe for concurrent use;
// the signing secret never changes after construction.
type Manager struct {
	config Config
}

// NewManager validates the configuration and returns a ready Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("hs256 requires a signing secret")
	}
	if cfg.TTL < 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Manager{config: cfg}, nil
}

// Issue mints a signed token for subject with iat = now, exp = now + TTL,
// and a random jti.
func (m *Manager) Issue(subject string) (string, error) {
	now := m.config.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
			ID:        uuid.NewString(),
			Issuer:    m.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.config.Secret)
}

// Verify checks signature and expiry and returns the decoded claims.
// Failures collapse to [ErrTokenExpired] or [ErrTokenInvalid]; a forged
// token is always reported invalid even when its payload also carries a past
// expiry, so the error kind leaks nothing about the payload.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.config.Now),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.config.Secret, nil
	})
	if err != nil {
		// Signature and structure failures take precedence over expiry:
		// parsing a forged token may surface both, and reporting "expired"
		// for it would confirm the payload was read.
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// TTL returns the effective token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.config.TTL
}
