// Package publicauth serves the credentials login form and the sign-out
// endpoint.
package publicauth

import (
	"context"
	"net/http"

	"github.com/louisbranch/invoicing/internal/services/auth/authn"
	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// Authenticator signs a login form submission in.
type Authenticator interface {
	Authenticate(ctx context.Context, creds authn.Credentials) (authn.Session, string, error)
}

// SessionRevoker ends the session named by a cookie token.
type SessionRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// Module provides the public login routes.
type Module struct {
	authenticator Authenticator
	base          modulehandler.Base
}

// New returns the login module.
func New(authenticator Authenticator, base modulehandler.Base) Module {
	return Module{authenticator: authenticator, base: base}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "publicauth" }

// Mount wires login routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := loginHandlers{Base: m.base, authenticator: m.authenticator}
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleForm)
	mux.HandleFunc(http.MethodGet+" "+routepath.LoginPrefix+"{$}", h.handleForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleSubmit)
	mux.HandleFunc(http.MethodPost+" "+routepath.LoginPrefix+"{$}", h.handleSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.LoginPrefix+"{rest...}", h.handleNotFound)
	return module.Mount{Prefix: routepath.LoginPrefix, Handler: mux}, nil
}

// SignOut provides the authenticated logout route.
type SignOut struct {
	sessions SessionRevoker
	base     modulehandler.Base
}

// NewSignOut returns the logout module.
func NewSignOut(sessions SessionRevoker, base modulehandler.Base) SignOut {
	return SignOut{sessions: sessions, base: base}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (SignOut) ID() string { return "signout" }

// Mount wires the logout route.
func (m SignOut) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := signOutHandlers{Base: m.base, sessions: m.sessions}
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	mux.HandleFunc(http.MethodPost+" "+routepath.LogoutPrefix+"{$}", h.handleLogout)
	return module.Mount{Prefix: routepath.LogoutPrefix, Handler: mux}, nil
}
