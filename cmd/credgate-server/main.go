// Command credgate-server runs the credential API as a standalone process.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (--config), then command-line flags. The token signing secret must come
// from configuration; the server refuses to start without one.
//
// Run:
//
//	go run ./cmd/credgate-server --secret <hex-or-raw-secret>
//
// Then:
//
//	curl -i -X POST localhost:8080/create \
//	  -H 'Content-Type: application/json' \
//	  -d '{"username":"alice","password":"Passw0rd!"}'
//
//	curl -i -X POST localhost:8080/authenticate \
//	  -H 'Content-Type: application/json' \
//	  -d '{"username":"alice","password":"Passw0rd!"}'
//
//	curl -i "localhost:8080/api/check?token=<TOKEN>"
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/credgate/credgate"
	"github.com/credgate/credgate/httpapi"
	"github.com/credgate/credgate/userstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "credgate-server:", err)
		os.Exit(1)
	}
}

type settings struct {
	Listen         string        `koanf:"listen"`
	Secret         string        `koanf:"secret"`
	TokenTTL       time.Duration `koanf:"token_ttl"`
	TokenIssuer    string        `koanf:"token_issuer"`
	RedisAddr      string        `koanf:"redis_addr"`
	RateLimitScope string        `koanf:"rate_limit_scope"`
	RateLimitTotal int           `koanf:"rate_limit_total"`
	TrustProxy     bool          `koanf:"trust_proxy_header"`
	Development    bool          `koanf:"development"`
}

func loadSettings(args []string) (settings, error) {
	flags := pflag.NewFlagSet("credgate-server", pflag.ContinueOnError)
	flags.String("config", "", "path to YAML config file")
	flags.String("listen", ":8080", "listen address")
	flags.String("secret", "", "token signing secret (required)")
	flags.Duration("token_ttl", 24*time.Hour, "token lifetime")
	flags.String("token_issuer", "", "token issuer claim")
	flags.String("redis_addr", "", "redis address; empty runs fully in-process")
	flags.String("rate_limit_scope", string(credgate.ScopeAuthenticate), "rate limit scope: authenticate or all-posts")
	flags.Int("rate_limit_total", 0, "override the scope's attempt budget")
	flags.Bool("trust_proxy_header", false, "key rate limits by X-Forwarded-For; only behind a proxy that overwrites it")
	flags.Bool("development", false, "development logging")
	if err := flags.Parse(args); err != nil {
		return settings{}, err
	}

	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return settings{}, fmt.Errorf("load config file: %w", err)
		}
	}

	// Flags win over the file.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return settings{}, fmt.Errorf("load flags: %w", err)
	}

	var s settings
	if err := k.Unmarshal("", &s); err != nil {
		return settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return s, nil
}

func run() error {
	s, err := loadSettings(os.Args[1:])
	if err != nil {
		return err
	}

	logger, err := buildLogger(s.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if s.Secret == "" {
		return errors.New("a token signing secret is required (--secret or config file)")
	}

	cfg := credgate.DefaultConfig()
	cfg.Token.Secret = []byte(s.Secret)
	cfg.Token.TTL = s.TokenTTL
	cfg.Token.Issuer = s.TokenIssuer
	cfg.RateLimit.Scope = credgate.RateLimitScope(s.RateLimitScope)
	cfg.RateLimit.Total = s.RateLimitTotal
	cfg.RateLimit.TrustProxyHeader = s.TrustProxy

	builder := credgate.New().WithConfig(cfg)

	if s.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: s.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		defer func() { _ = client.Close() }()

		builder = builder.WithRedis(client).WithUserRepository(userstore.NewRedis(client))
		logger.Info("using redis", zap.String("addr", s.RedisAddr))
	} else {
		builder = builder.WithUserRepository(userstore.NewMemory())
		logger.Info("using in-process stores; state is lost on restart")
	}

	pipe, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	router, err := httpapi.NewRouter(pipe, logger)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:              s.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", s.Listen),
			zap.String("rate_limit_scope", s.RateLimitScope),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func buildLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
