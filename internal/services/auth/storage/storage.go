// Package storage declares persistence contracts for dashboard users and
// their web sessions.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/invoicing/internal/services/auth/user"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// UserStore persists user accounts.
type UserStore interface {
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}

// WebSession is a server-tracked browser session.
type WebSession struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session is unrevoked and unexpired at now.
func (s WebSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// SessionStore persists web sessions.
type SessionStore interface {
	PutWebSession(ctx context.Context, session WebSession) error
	GetWebSession(ctx context.Context, sessionID string) (WebSession, error)
	RevokeWebSession(ctx context.Context, sessionID string, revokedAt time.Time) error
	DeleteExpiredWebSessions(ctx context.Context, now time.Time) (int64, error)
}

// Store is the full auth persistence surface.
type Store interface {
	UserStore
	SessionStore
	Ping(ctx context.Context) error
	Close() error
}
