// Package storage declares the web view cache persistence contract.
package storage

import (
	"context"
	"time"
)

// CacheEntry stores one rendered-view payload and its freshness metadata.
//
// Cache data is always derived and can be discarded and rebuilt from the
// invoices store.
type CacheEntry struct {
	CacheKey     string
	Scope        string
	PayloadBytes []byte
	CheckedAt    time.Time
	ExpiresAt    time.Time
}

// Fresh reports whether the entry may still be served at now. A zero
// ExpiresAt never expires.
func (e CacheEntry) Fresh(now time.Time) bool {
	return e.ExpiresAt.IsZero() || now.Before(e.ExpiresAt)
}

// Store persists cache entries grouped by scope.
type Store interface {
	GetCacheEntry(ctx context.Context, cacheKey string) (CacheEntry, bool, error)
	PutCacheEntry(ctx context.Context, entry CacheEntry) error
	DeleteCacheEntry(ctx context.Context, cacheKey string) error
	// DeleteScope drops every entry recorded under scope.
	DeleteScope(ctx context.Context, scope string) (int64, error)
	// DeleteExpired drops entries whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
