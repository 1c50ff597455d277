package credgate

import (
	"errors"

	"github.com/credgate/credgate/jwt"
	"github.com/credgate/credgate/password"
	"github.com/credgate/credgate/ratelimit"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Pipeline]. A Builder is single-use: Build may be
// called once, after which the builder refuses further work.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	users  UserRepository
	store  ratelimit.Store

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder configuration. The config is cloned so
// later mutation by the caller cannot reach the built pipeline.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies a Redis client. When set, the rate-limit counter store
// is Redis-backed so multiple instances share one attempt budget.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserRepository supplies the user store. Required.
func (b *Builder) WithUserRepository(repo UserRepository) *Builder {
	b.users = repo
	return b
}

// WithRateLimitStore overrides the counter store used by the rate limiter.
// Takes precedence over the store derived from WithRedis.
func (b *Builder) WithRateLimitStore(store ratelimit.Store) *Builder {
	b.store = store
	return b
}

// Build validates the configuration, constructs the hasher, token manager,
// and rate limiter, and returns the ready pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.users == nil {
		return nil, errors.New("user repository required")
	}

	store := b.store
	if store == nil {
		if b.redis != nil {
			store = ratelimit.NewRedisStore(b.redis)
		} else {
			store = ratelimit.NewMemoryStore()
		}
	}

	hasher, err := password.NewArgon2(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := jwt.NewManager(jwt.Config{
		Secret: cloneBytes(cfg.Token.Secret),
		TTL:    cfg.Token.TTL,
		Issuer: cfg.Token.Issuer,
		Leeway: cfg.Token.Leeway,
	})
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Pipeline{
		config:  cfg,
		users:   b.users,
		policy:  cfg.Policy,
		hasher:  hasher,
		tokens:  tokens,
		store:   store,
		limiter: ratelimit.New(store, cfg.RateLimit.Policy()),
		metrics: NewMetrics(cfg.Metrics),
	}, nil
}
