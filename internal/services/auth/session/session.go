// Package session issues and resolves signed web session tokens backed by
// server-side session rows.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/invoicing/internal/platform/id"
	"github.com/louisbranch/invoicing/internal/services/auth/storage"
)

const (
	issuer = "invoicing"
	// MinSecretLength is the shortest HMAC secret accepted.
	MinSecretLength = 32
	// DefaultTTL is the session lifetime when none is configured.
	DefaultTTL = 24 * time.Hour
)

// ErrInvalidSession indicates a token that does not name a live session.
var ErrInvalidSession = errors.New("invalid session")

// Token is an issued session token.
type Token struct {
	Value     string
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

// Config configures a Manager.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
	NewID  func() (string, error)
}

// Manager issues, resolves, and revokes web sessions.
type Manager struct {
	store  storage.SessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	newID  func() (string, error)
}

type claims struct {
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a Manager over store.
func NewManager(store storage.SessionStore, cfg Config) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = id.NewID
	}
	return &Manager{
		store:  store,
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		now:    cfg.Now,
		newID:  cfg.NewID,
	}, nil
}

// Issue creates a session row for userID and returns its signed token.
func (m *Manager) Issue(ctx context.Context, userID string) (Token, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Token{}, fmt.Errorf("user id is required")
	}
	sessionID, err := m.newID()
	if err != nil {
		return Token{}, fmt.Errorf("generate session id: %w", err)
	}
	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)

	if err := m.store.PutWebSession(ctx, storage.WebSession{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return Token{}, fmt.Errorf("store session: %w", err)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign session: %w", err)
	}
	return Token{Value: signed, SessionID: sessionID, UserID: userID, ExpiresAt: expiresAt}, nil
}

// Resolve verifies token and returns its live session. Tokens with a bad
// signature, an expired claim, or a revoked or missing row return
// ErrInvalidSession. Store failures are returned as-is.
func (m *Manager) Resolve(ctx context.Context, token string) (storage.WebSession, error) {
	parsed, err := m.parse(token)
	if err != nil {
		return storage.WebSession{}, err
	}
	session, err := m.store.GetWebSession(ctx, parsed.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.WebSession{}, ErrInvalidSession
	}
	if err != nil {
		return storage.WebSession{}, fmt.Errorf("load session: %w", err)
	}
	if session.UserID != parsed.Subject || !session.Active(m.now().UTC()) {
		return storage.WebSession{}, ErrInvalidSession
	}
	return session, nil
}

// Revoke marks the session named by token revoked. Invalid tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	parsed, err := m.parse(token)
	if err != nil {
		return nil
	}
	if err := m.store.RevokeWebSession(ctx, parsed.ID, m.now().UTC()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (m *Manager) parse(token string) (claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return claims{}, ErrInvalidSession
	}
	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || parsed.ID == "" || parsed.Subject == "" {
		return claims{}, ErrInvalidSession
	}
	return parsed, nil
}
