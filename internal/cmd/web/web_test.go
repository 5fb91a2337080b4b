package web

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "data/invoicing.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.AuthDBPath != "data/auth.db" {
		t.Fatalf("expected default auth db path, got %q", cfg.AuthDBPath)
	}
	if cfg.CacheDBPath != "data/cache.db" {
		t.Fatalf("expected default cache db path, got %q", cfg.CacheDBPath)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.ListingCacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m listing cache ttl, got %v", cfg.ListingCacheTTL)
	}
	if cfg.TrustForwardedProto {
		t.Fatal("expected forwarded proto to be untrusted by default")
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "127.0.0.1:9999",
		"-db-path", "tmp/inv.db",
		"-cache-db-path", " ",
		"-session-ttl", "2h",
		"-trust-forwarded-proto",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9999" {
		t.Fatalf("expected http addr override, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "tmp/inv.db" {
		t.Fatalf("expected db path override, got %q", cfg.DBPath)
	}
	if cfg.CacheDBPath != "" {
		t.Fatalf("expected blank cache path to disable caching, got %q", cfg.CacheDBPath)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected session ttl override, got %v", cfg.SessionTTL)
	}
	if !cfg.TrustForwardedProto {
		t.Fatal("expected forwarded proto override")
	}
}

func TestParseConfigReadsEnv(t *testing.T) {
	t.Setenv("INVOICING_AUTH_SECRET", "env-secret")
	t.Setenv("INVOICING_LISTING_CACHE_TTL", "30s")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.AuthSecret != "env-secret" {
		t.Fatalf("expected env auth secret, got %q", cfg.AuthSecret)
	}
	if cfg.ListingCacheTTL != 30*time.Second {
		t.Fatalf("expected env listing cache ttl, got %v", cfg.ListingCacheTTL)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		HTTPAddr:   "localhost:8080",
		DBPath:     "inv.db",
		AuthDBPath: "auth.db",
		AuthSecret: strings.Repeat("k", 32),
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing addr", mutate: func(c *Config) { c.HTTPAddr = " " }, wantErr: true},
		{name: "missing db path", mutate: func(c *Config) { c.DBPath = "" }, wantErr: true},
		{name: "missing auth db path", mutate: func(c *Config) { c.AuthDBPath = "" }, wantErr: true},
		{name: "short secret", mutate: func(c *Config) { c.AuthSecret = "short" }, wantErr: true},
		{name: "cache optional", mutate: func(c *Config) { c.CacheDBPath = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestRunRejectsMissingSecret(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{HTTPAddr: "127.0.0.1:0", DBPath: "inv.db", AuthDBPath: "auth.db"})
	if err == nil {
		t.Fatal("expected missing secret error")
	}
}

func TestRunOpensStoresAndStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, Config{
		HTTPAddr:        "127.0.0.1:0",
		DBPath:          filepath.Join(dir, "invoicing.db"),
		AuthDBPath:      filepath.Join(dir, "auth.db"),
		CacheDBPath:     filepath.Join(dir, "cache.db"),
		AuthSecret:      strings.Repeat("k", 32),
		ListingCacheTTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{"invoicing.db", "auth.db", "cache.db"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to be created: %v", name, err)
		}
	}
}
