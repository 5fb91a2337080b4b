package viewcache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	webstorage "github.com/louisbranch/invoicing/internal/services/web/storage"
	"github.com/louisbranch/invoicing/internal/services/web/storage/sqlite"
)

type listingPayload struct {
	Rows  []string `json:"rows"`
	Pages int      `json:"pages"`
}

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetInvalidate(t *testing.T) {
	store := openStore(t)
	cache := New(store)
	ctx := context.Background()

	cache.Put(ctx, "/dashboard/invoices/", "/dashboard/invoices?page=1", listingPayload{Rows: []string{"inv-1"}, Pages: 1})

	var got listingPayload
	if !cache.Get(ctx, "/dashboard/invoices?page=1", &got) {
		t.Fatalf("expected cache hit")
	}
	if got.Pages != 1 || len(got.Rows) != 1 || got.Rows[0] != "inv-1" {
		t.Fatalf("payload = %+v", got)
	}

	cache.Invalidate(ctx, "/dashboard/invoices")
	if cache.Get(ctx, "/dashboard/invoices?page=1", &got) {
		t.Fatalf("expected miss after invalidation")
	}
}

func TestPutAfterInvalidationIsDropped(t *testing.T) {
	store := openStore(t)
	cache := New(store)
	ctx := context.Background()

	gen := cache.Generation("/dashboard/invoices")
	// The listing read finishes after a write has invalidated the scope.
	cache.Invalidate(ctx, "/dashboard/invoices/")
	cache.PutIfCurrent(ctx, "/dashboard/invoices", "/dashboard/invoices?page=1", listingPayload{Rows: []string{"stale"}}, gen)

	var got listingPayload
	if cache.Get(ctx, "/dashboard/invoices?page=1", &got) {
		t.Fatalf("stale payload cached after invalidation: %+v", got)
	}
	if next := cache.Generation("/dashboard/invoices"); next == gen {
		t.Fatalf("generation = %d, want advanced past %d", next, gen)
	}

	cache.PutIfCurrent(ctx, "/dashboard/invoices", "/dashboard/invoices?page=1", listingPayload{Rows: []string{"fresh"}}, cache.Generation("/dashboard/invoices"))
	if !cache.Get(ctx, "/dashboard/invoices?page=1", &got) || got.Rows[0] != "fresh" {
		t.Fatalf("expected fresh payload, got %+v", got)
	}
}

func TestGenerationsAreScoped(t *testing.T) {
	store := openStore(t)
	cache := New(store)
	ctx := context.Background()

	gen := cache.Generation("/dashboard/customers")
	cache.Invalidate(ctx, "/dashboard/invoices")
	cache.PutIfCurrent(ctx, "/dashboard/customers", "c", listingPayload{Pages: 1}, gen)

	var got listingPayload
	if !cache.Get(ctx, "c", &got) {
		t.Fatalf("invalidating another scope dropped the write")
	}
}

func TestExpiredEntriesMiss(t *testing.T) {
	store := openStore(t)
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	cache := New(store, WithTTL(time.Minute), WithClock(clock))
	ctx := context.Background()

	cache.Put(ctx, "/dashboard/invoices", "k", listingPayload{Pages: 2})
	var got listingPayload
	if !cache.Get(ctx, "k", &got) {
		t.Fatalf("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if cache.Get(ctx, "k", &got) {
		t.Fatalf("expected miss after expiry")
	}
	cache.Sweep(ctx)
	if _, ok, err := store.GetCacheEntry(ctx, "k"); err != nil || ok {
		t.Fatalf("entry after sweep = ok %v err %v", ok, err)
	}
}

func TestNilStoreIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, cache := range []*Cache{nil, New(nil)} {
		cache.Put(ctx, "s", "k", listingPayload{})
		cache.PutIfCurrent(ctx, "s", "k", listingPayload{}, cache.Generation("s"))
		cache.Invalidate(ctx, "s")
		cache.Sweep(ctx)
		var got listingPayload
		if cache.Get(ctx, "k", &got) {
			t.Fatalf("disabled cache hit")
		}
	}
}

type failingStore struct {
	webstorage.Store
	deleteCalls int
}

func (f *failingStore) DeleteScope(context.Context, string) (int64, error) {
	f.deleteCalls++
	return 0, errors.New("database is locked")
}

func (f *failingStore) GetCacheEntry(context.Context, string) (webstorage.CacheEntry, bool, error) {
	return webstorage.CacheEntry{}, false, errors.New("database is locked")
}

func (f *failingStore) PutCacheEntry(context.Context, webstorage.CacheEntry) error {
	return errors.New("database is locked")
}

func TestStoreFailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	store := &failingStore{}
	cache := New(store)
	ctx := context.Background()

	cache.Invalidate(ctx, "/dashboard/invoices")
	if store.deleteCalls != 1 {
		t.Fatalf("delete calls = %d, want 1", store.deleteCalls)
	}
	cache.Invalidate(ctx, "   ")
	if store.deleteCalls != 1 {
		t.Fatalf("blank scope reached the store")
	}
	cache.Put(ctx, "/dashboard/invoices", "k", listingPayload{})
	var got listingPayload
	if cache.Get(ctx, "k", &got) {
		t.Fatalf("failed read reported hit")
	}
}

func TestCorruptPayloadMisses(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	if err := store.PutCacheEntry(ctx, webstorage.CacheEntry{CacheKey: "k", Scope: "s", PayloadBytes: []byte("not json")}); err != nil {
		t.Fatalf("put: %v", err)
	}
	var got listingPayload
	if New(store).Get(ctx, "k", &got) {
		t.Fatalf("corrupt payload reported hit")
	}
}
