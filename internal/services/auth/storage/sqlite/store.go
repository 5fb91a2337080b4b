// Package sqlite implements user and web session persistence on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/invoicing/internal/platform/storage/sqliteconn"
	"github.com/louisbranch/invoicing/internal/services/auth/storage"
	"github.com/louisbranch/invoicing/internal/services/auth/storage/sqlite/migrations"
	"github.com/louisbranch/invoicing/internal/services/auth/user"
)

var _ storage.Store = (*Store)(nil)

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store implements auth persistence over SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens an auth SQLite store and applies bundled migrations.
func Open(path string) (*Store, error) {
	sqlDB, err := sqliteconn.Open(context.Background(), path, migrations.FS, "")
	if err != nil {
		return nil, err
	}
	return &Store{sqlDB: sqlDB}, nil
}

// New wraps an already opened database. Migrations are not applied.
func New(sqlDB *sql.DB) *Store {
	return &Store{sqlDB: sqlDB}
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutUser inserts a user or replaces the name and password hash of an
// existing user with the same email.
func (s *Store) PutUser(ctx context.Context, u user.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("email is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			password_hash = excluded.password_hash`,
		u.ID, u.Name, u.Email, u.PasswordHash, toMillis(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	return s.scanUser(s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, userID))
}

// GetUserByEmail loads a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	return s.scanUser(s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email))
}

func (s *Store) scanUser(row *sql.Row) (user.User, error) {
	var u user.User
	var createdAt int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, storage.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

// PutWebSession stores a new web session.
func (s *Store) PutWebSession(ctx context.Context, session storage.WebSession) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(session.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO web_sessions (id, user_id, created_at, expires_at, revoked_at) VALUES (?, ?, ?, ?, NULL)`,
		session.ID, session.UserID, toMillis(session.CreatedAt), toMillis(session.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put web session: %w", err)
	}
	return nil
}

// GetWebSession loads a web session by id.
func (s *Store) GetWebSession(ctx context.Context, sessionID string) (storage.WebSession, error) {
	if err := s.ready(ctx); err != nil {
		return storage.WebSession{}, err
	}
	var session storage.WebSession
	var createdAt, expiresAt int64
	var revokedAt sql.NullInt64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, expires_at, revoked_at FROM web_sessions WHERE id = ?`,
		sessionID,
	).Scan(&session.ID, &session.UserID, &createdAt, &expiresAt, &revokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.WebSession{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.WebSession{}, fmt.Errorf("get web session: %w", err)
	}
	session.CreatedAt = fromMillis(createdAt)
	session.ExpiresAt = fromMillis(expiresAt)
	if revokedAt.Valid {
		value := fromMillis(revokedAt.Int64)
		session.RevokedAt = &value
	}
	return session, nil
}

// RevokeWebSession marks a session revoked. Revoking an unknown or already
// revoked session is a no-op.
func (s *Store) RevokeWebSession(ctx context.Context, sessionID string, revokedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`UPDATE web_sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		toMillis(revokedAt), sessionID,
	)
	if err != nil {
		return fmt.Errorf("revoke web session: %w", err)
	}
	return nil
}

// DeleteExpiredWebSessions removes sessions that expired before now.
func (s *Store) DeleteExpiredWebSessions(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, fmt.Errorf("delete expired web sessions: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired web sessions rows affected: %w", err)
	}
	return deleted, nil
}
