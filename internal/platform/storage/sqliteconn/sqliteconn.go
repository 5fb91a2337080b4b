// Package sqliteconn opens SQLite databases with the pragmas every store
// relies on and applies their embedded migrations.
package sqliteconn

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/invoicing/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Pragmas are applied to each pooled connection.
const Pragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// DSN returns the driver name for path with the shared pragmas appended.
func DSN(path string) string {
	return filepath.Clean(path) + "?" + Pragmas
}

// Open opens the database at path, creating its parent directory, and applies
// the migrations found at migrationRoot in migrationFS.
func Open(ctx context.Context, path string, migrationFS fs.FS, migrationRoot string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if dir := filepath.Dir(filepath.Clean(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if migrationFS != nil {
		if err := sqlitemigrate.Apply(ctx, sqlDB, migrationFS, migrationRoot); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}
