package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/invoicing/internal/platform/cmd"
	"github.com/louisbranch/invoicing/internal/services/auth/authn"
	"github.com/louisbranch/invoicing/internal/services/auth/credentials"
	"github.com/louisbranch/invoicing/internal/services/auth/session"
	authsqlite "github.com/louisbranch/invoicing/internal/services/auth/storage/sqlite"
	"github.com/louisbranch/invoicing/internal/services/invoices/mutate"
	invoicessqlite "github.com/louisbranch/invoicing/internal/services/invoices/storage/sqlite"
	"github.com/louisbranch/invoicing/internal/services/web"
	websqlite "github.com/louisbranch/invoicing/internal/services/web/storage/sqlite"
	"github.com/louisbranch/invoicing/internal/services/web/viewcache"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"INVOICING_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"INVOICING_DB_PATH" envDefault:"data/invoicing.db"`
	AuthDBPath          string        `env:"INVOICING_AUTH_DB_PATH" envDefault:"data/auth.db"`
	CacheDBPath         string        `env:"INVOICING_CACHE_DB_PATH" envDefault:"data/cache.db"`
	AuthSecret          string        `env:"INVOICING_AUTH_SECRET"`
	SessionTTL          time.Duration `env:"INVOICING_SESSION_TTL" envDefault:"24h"`
	ListingCacheTTL     time.Duration `env:"INVOICING_LISTING_CACHE_TTL" envDefault:"5m"`
	TrustForwardedProto bool          `env:"INVOICING_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Invoices SQLite database path")
	fs.StringVar(&cfg.AuthDBPath, "auth-db-path", cfg.AuthDBPath, "Users and sessions SQLite database path")
	fs.StringVar(&cfg.CacheDBPath, "cache-db-path", cfg.CacheDBPath, "Listing cache SQLite database path (empty disables caching)")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Session signing secret")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto for secure cookies")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.CacheDBPath = strings.TrimSpace(cfg.CacheDBPath)
	return cfg, nil
}

// Validate reports configuration that cannot start a server.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("http address is required")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("invoices db path is required")
	}
	if strings.TrimSpace(c.AuthDBPath) == "" {
		return errors.New("auth db path is required")
	}
	if len(c.AuthSecret) < session.MinSecretLength {
		return fmt.Errorf("auth secret must be at least %d bytes", session.MinSecretLength)
	}
	return nil
}

// Run starts the dashboard web server.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid web config: %w", err)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		invoiceStore, err := invoicessqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open invoices store: %w", err)
		}
		defer closeStore("invoices", invoiceStore.Close)

		authStore, err := authsqlite.Open(cfg.AuthDBPath)
		if err != nil {
			return fmt.Errorf("open auth store: %w", err)
		}
		defer closeStore("auth", authStore.Close)

		var (
			cache       *viewcache.Cache
			invalidator mutate.Invalidator
		)
		if cfg.CacheDBPath != "" {
			cacheStore, err := websqlite.Open(cfg.CacheDBPath)
			if err != nil {
				return fmt.Errorf("open cache store: %w", err)
			}
			defer closeStore("cache", cacheStore.Close)
			cache = viewcache.New(cacheStore, viewcache.WithTTL(cfg.ListingCacheTTL))
			invalidator = cache
		} else {
			log.Printf("listing cache disabled")
		}

		sessions, err := session.NewManager(authStore, session.Config{
			Secret: []byte(cfg.AuthSecret),
			TTL:    cfg.SessionTTL,
		})
		if err != nil {
			return fmt.Errorf("init session manager: %w", err)
		}

		server, err := web.NewServer(web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			TrustForwardedProto: cfg.TrustForwardedProto,
		}, web.Dependencies{
			Sessions:      sessions,
			Users:         authStore,
			Authenticator: authn.NewAuthenticator(credentials.NewProvider(authStore, sessions)),
			Invoices:      invoiceStore,
			Mutator:       mutate.New(invoiceStore, invalidator),
			Cache:         cache,
			Health: func(ctx context.Context) error {
				if err := invoiceStore.Ping(ctx); err != nil {
					return fmt.Errorf("invoices store: %w", err)
				}
				if err := authStore.Ping(ctx); err != nil {
					return fmt.Errorf("auth store: %w", err)
				}
				return nil
			},
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func closeStore(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Printf("close %s store: %v", name, err)
	}
}
