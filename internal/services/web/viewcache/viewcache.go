// Package viewcache caches page data by path and drops it when the
// underlying records change.
package viewcache

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	webstorage "github.com/louisbranch/invoicing/internal/services/web/storage"
)

// DefaultTTL bounds how long an entry is served without invalidation.
const DefaultTTL = 5 * time.Minute

// Cache stores JSON page data in a web cache store. A Cache without a store
// misses every read and ignores every write.
//
// Each scope carries a generation that Invalidate advances. A reader takes
// the generation before loading from the source of truth and writes with
// PutIfCurrent, so data read before an invalidation is never stored after it.
// Generations are tracked in process.
type Cache struct {
	store webstorage.Store
	ttl   time.Duration
	now   func() time.Time

	mu          sync.Mutex
	generations map[string]uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry lifetime; non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock sets the clock used for expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a Cache over store.
func New(store webstorage.Store, opts ...Option) *Cache {
	c := &Cache{store: store, ttl: DefaultTTL, now: time.Now, generations: map[string]uint64{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) enabled() bool {
	return c != nil && c.store != nil
}

// Invalidate drops every entry cached under pathKey. Failures are logged and
// never returned.
func (c *Cache) Invalidate(ctx context.Context, pathKey string) {
	if !c.enabled() {
		return
	}
	scope := normalizeScope(pathKey)
	if scope == "" {
		return
	}
	// Bumping under the lock waits out any PutIfCurrent mid-write, so the
	// delete below sees its entry.
	c.mu.Lock()
	c.generations[scope]++
	c.mu.Unlock()

	n, err := c.store.DeleteScope(ctx, scope)
	if err != nil {
		log.Printf("view cache invalidate failed scope=%s err=%v", scope, err)
		return
	}
	log.Printf("view cache invalidated scope=%s entries=%d", scope, n)
}

// Get decodes the fresh entry for key into dst and reports whether it hit.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	if !c.enabled() {
		return false
	}
	entry, ok, err := c.store.GetCacheEntry(ctx, key)
	if err != nil {
		log.Printf("view cache read failed key=%s err=%v", key, err)
		return false
	}
	if !ok || !entry.Fresh(c.now()) {
		return false
	}
	if err := json.Unmarshal(entry.PayloadBytes, dst); err != nil {
		log.Printf("view cache decode failed key=%s err=%v", key, err)
		return false
	}
	return true
}

// Generation returns the current invalidation generation of scope.
func (c *Cache) Generation(scope string) uint64 {
	if !c.enabled() {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[normalizeScope(scope)]
}

// Put stores value under key within scope until the TTL elapses.
func (c *Cache) Put(ctx context.Context, scope string, key string, value any) {
	c.PutIfCurrent(ctx, scope, key, value, c.Generation(scope))
}

// PutIfCurrent stores value like Put, but only while scope is still at
// generation gen. A scope invalidated since gen was taken skips the write.
func (c *Cache) PutIfCurrent(ctx context.Context, scope string, key string, value any, gen uint64) {
	if !c.enabled() {
		return
	}
	scope = normalizeScope(scope)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[scope] != gen {
		log.Printf("view cache write skipped key=%s scope=%s reason=invalidated", key, scope)
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("view cache encode failed key=%s err=%v", key, err)
		return
	}
	now := c.now().UTC()
	if err := c.store.PutCacheEntry(ctx, webstorage.CacheEntry{
		CacheKey:     key,
		Scope:        scope,
		PayloadBytes: payload,
		CheckedAt:    now,
		ExpiresAt:    now.Add(c.ttl),
	}); err != nil {
		log.Printf("view cache write failed key=%s err=%v", key, err)
	}
}

// Sweep removes expired entries.
func (c *Cache) Sweep(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if _, err := c.store.DeleteExpired(ctx, c.now()); err != nil {
		log.Printf("view cache sweep failed err=%v", err)
	}
}

func normalizeScope(pathKey string) string {
	pathKey = strings.TrimSpace(pathKey)
	if len(pathKey) > 1 {
		pathKey = strings.TrimRight(pathKey, "/")
	}
	return pathKey
}
