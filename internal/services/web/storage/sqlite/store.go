package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/invoicing/internal/platform/storage/sqliteconn"
	webstorage "github.com/louisbranch/invoicing/internal/services/web/storage"
	"github.com/louisbranch/invoicing/internal/services/web/storage/sqlite/migrations"
)

var _ webstorage.Store = (*Store)(nil)

var errNotConfigured = errors.New("storage is not configured")

// Store provides SQLite-backed persistence for web cache data.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a web cache SQLite store.
func Open(path string) (*Store, error) {
	sqlDB, err := sqliteconn.Open(context.Background(), path, migrations.FS, "")
	if err != nil {
		return nil, err
	}
	return New(sqlDB), nil
}

// New wraps an already opened database. Migrations are not applied.
func New(sqlDB *sql.DB) *Store {
	return &Store{sqlDB: sqlDB, now: time.Now}
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// GetCacheEntry loads the entry stored under cacheKey. A miss reports false
// with a nil error.
func (s *Store) GetCacheEntry(ctx context.Context, cacheKey string) (webstorage.CacheEntry, bool, error) {
	db, err := s.conn()
	if err != nil {
		return webstorage.CacheEntry{}, false, err
	}
	if cacheKey, err = required("cache key", cacheKey); err != nil {
		return webstorage.CacheEntry{}, false, err
	}

	var (
		entry     webstorage.CacheEntry
		checkedAt int64
		expiresAt int64
	)
	err = db.QueryRowContext(ctx,
		`SELECT cache_key, scope, payload_json, checked_at, expires_at FROM cache_entries WHERE cache_key = ?`,
		cacheKey,
	).Scan(&entry.CacheKey, &entry.Scope, &entry.PayloadBytes, &checkedAt, &expiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return webstorage.CacheEntry{}, false, nil
	case err != nil:
		return webstorage.CacheEntry{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	entry.CheckedAt = fromMillis(checkedAt)
	entry.ExpiresAt = fromMillis(expiresAt)
	return entry, true, nil
}

// PutCacheEntry inserts or replaces the entry keyed by entry.CacheKey. A zero
// CheckedAt is stamped with the store clock.
func (s *Store) PutCacheEntry(ctx context.Context, entry webstorage.CacheEntry) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if entry.CacheKey, err = required("cache key", entry.CacheKey); err != nil {
		return err
	}
	if entry.Scope, err = required("cache scope", entry.Scope); err != nil {
		return err
	}
	if len(entry.PayloadBytes) == 0 {
		return errors.New("cache payload is required")
	}
	if entry.CheckedAt.IsZero() {
		entry.CheckedAt = s.now().UTC()
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO cache_entries (cache_key, scope, payload_json, checked_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
			scope = excluded.scope,
			payload_json = excluded.payload_json,
			checked_at = excluded.checked_at,
			expires_at = excluded.expires_at`,
		entry.CacheKey, entry.Scope, entry.PayloadBytes,
		toMillis(entry.CheckedAt), toMillis(entry.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// DeleteCacheEntry removes the entry keyed by cacheKey, if any.
func (s *Store) DeleteCacheEntry(ctx context.Context, cacheKey string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if cacheKey, err = required("cache key", cacheKey); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, cacheKey); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// DeleteScope removes every entry recorded under scope.
func (s *Store) DeleteScope(ctx context.Context, scope string) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	if scope, err = required("cache scope", scope); err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM cache_entries WHERE scope = ?`, scope)
	return affected("delete cache scope", res, err)
}

// DeleteExpired removes entries with a non-zero expiry at or before now.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE expires_at > 0 AND expires_at <= ?`,
		toMillis(now),
	)
	return affected("delete expired cache entries", res, err)
}

func (s *Store) conn() (*sql.DB, error) {
	if s == nil || s.sqlDB == nil {
		return nil, errNotConfigured
	}
	return s.sqlDB, nil
}

func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return value, nil
}

func affected(op string, res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows: %w", op, err)
	}
	return n, nil
}

// Timestamps are stored as UTC unix milliseconds; zero means unset.
func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
