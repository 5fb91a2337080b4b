// Package credentials signs users in with an email and password.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/invoicing/internal/services/auth/authn"
	"github.com/louisbranch/invoicing/internal/services/auth/session"
	"github.com/louisbranch/invoicing/internal/services/auth/storage"
	"github.com/louisbranch/invoicing/internal/services/auth/user"
)

// SessionIssuer creates a session for an authenticated user.
type SessionIssuer interface {
	Issue(ctx context.Context, userID string) (session.Token, error)
}

// Provider implements authn.Provider for the credentials provider.
type Provider struct {
	users    storage.UserStore
	sessions SessionIssuer
}

var _ authn.Provider = (*Provider)(nil)

// NewProvider returns a Provider looking users up in users and issuing
// sessions through sessions.
func NewProvider(users storage.UserStore, sessions SessionIssuer) *Provider {
	return &Provider{users: users, sessions: sessions}
}

// SignIn checks creds and issues a session. Unknown users, malformed input,
// and wrong passwords are all reported as CredentialsSignin. Store and
// session issuance failures are returned unclassified.
func (p *Provider) SignIn(ctx context.Context, provider string, creds authn.Credentials) (authn.Session, error) {
	if provider != authn.ProviderCredentials {
		return authn.Session{}, authn.NewError(authn.Configuration, fmt.Errorf("unknown provider %q", provider))
	}
	if p == nil || p.users == nil || p.sessions == nil {
		return authn.Session{}, authn.NewError(authn.Configuration, errors.New("credentials provider is not configured"))
	}

	email, err := user.NormalizeEmail(creds.Email)
	if err != nil {
		return authn.Session{}, authn.NewError(authn.CredentialsSignin, err)
	}
	if err := user.ValidatePassword(creds.Password); err != nil {
		return authn.Session{}, authn.NewError(authn.CredentialsSignin, err)
	}

	u, err := p.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return authn.Session{}, authn.NewError(authn.CredentialsSignin, err)
	}
	if err != nil {
		return authn.Session{}, fmt.Errorf("load user: %w", err)
	}

	if err := user.ComparePassword(u.PasswordHash, creds.Password); err != nil {
		if !errors.Is(err, user.ErrPasswordMismatch) {
			log.Printf("credentials sign-in user_id=%s unreadable password hash: %v", u.ID, err)
		}
		return authn.Session{}, authn.NewError(authn.CredentialsSignin, err)
	}

	token, err := p.sessions.Issue(ctx, u.ID)
	if err != nil {
		return authn.Session{}, fmt.Errorf("issue session: %w", err)
	}
	return authn.Session{
		UserID:    u.ID,
		SessionID: token.SessionID,
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	}, nil
}
