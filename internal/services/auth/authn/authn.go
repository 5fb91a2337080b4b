// Package authn turns identity provider sign-in results into the message
// shown on the login form.
package authn

import (
	"context"
	"errors"
	"time"
)

// ErrorType classifies identity provider failures.
type ErrorType string

const (
	CredentialsSignin  ErrorType = "CredentialsSignin"
	Configuration      ErrorType = "Configuration"
	AccessDenied       ErrorType = "AccessDenied"
	CallbackRouteError ErrorType = "CallbackRouteError"
)

// Login form messages.
const (
	MessageInvalidCredentials = "Invalid credentials."
	MessageGeneric            = "Something went wrong."
)

// ProviderCredentials names the email and password provider.
const ProviderCredentials = "credentials"

// AuthError is a classified identity provider failure.
type AuthError struct {
	Type ErrorType
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Type) + ": " + e.Err.Error()
	}
	return string(e.Type)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewError returns an AuthError of type t wrapping cause.
func NewError(t ErrorType, cause error) *AuthError {
	return &AuthError{Type: t, Err: cause}
}

// Credentials is the login form submission.
type Credentials struct {
	Email    string
	Password string
}

// Session is an established browser session.
type Session struct {
	UserID    string
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// Provider signs a user in with the named provider.
type Provider interface {
	SignIn(ctx context.Context, provider string, creds Credentials) (Session, error)
}

// Authenticator runs credential sign-in for the login form.
type Authenticator struct {
	provider Provider
}

// NewAuthenticator returns an Authenticator over provider.
func NewAuthenticator(provider Provider) *Authenticator {
	return &Authenticator{provider: provider}
}

// Authenticate signs creds in. Classified failures become a form message
// with a nil error; any other failure is returned unchanged for the caller
// to handle.
func (a *Authenticator) Authenticate(ctx context.Context, creds Credentials) (Session, string, error) {
	if a == nil || a.provider == nil {
		return Session{}, MessageGeneric, nil
	}
	session, err := a.provider.SignIn(ctx, ProviderCredentials, creds)
	if err == nil {
		return session, "", nil
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return Session{}, "", err
	}
	if authErr.Type == CredentialsSignin {
		return Session{}, MessageInvalidCredentials, nil
	}
	return Session{}, MessageGeneric, nil
}
