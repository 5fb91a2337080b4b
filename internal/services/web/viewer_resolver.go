package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	authstorage "github.com/louisbranch/invoicing/internal/services/auth/storage"
	"github.com/louisbranch/invoicing/internal/services/auth/session"
	"github.com/louisbranch/invoicing/internal/services/auth/user"
	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/platform/httpx"
	"github.com/louisbranch/invoicing/internal/services/web/platform/sessioncookie"
)

// SessionResolver resolves and revokes session cookie tokens.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (authstorage.WebSession, error)
	Revoke(ctx context.Context, token string) error
}

// UserReader loads the account behind a session.
type UserReader interface {
	GetUser(ctx context.Context, userID string) (user.User, error)
}

// newViewerResolver returns a resolver that treats any failure to resolve the
// cookie as an anonymous request.
func newViewerResolver(sessions SessionResolver, users UserReader) module.ResolveViewer {
	return func(r *http.Request) module.Viewer {
		if sessions == nil || users == nil {
			return module.Viewer{}
		}
		token, ok := sessioncookie.Read(r)
		if !ok {
			return module.Viewer{}
		}
		ctx := httpx.RequestContext(r)
		ws, err := sessions.Resolve(ctx, token)
		if err != nil {
			if !errors.Is(err, session.ErrInvalidSession) {
				log.Printf("session resolve failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
			}
			return module.Viewer{}
		}
		u, err := users.GetUser(ctx, ws.UserID)
		if err != nil {
			if !errors.Is(err, authstorage.ErrNotFound) {
				log.Printf("session user lookup failed request_id=%s user_id=%s err=%v", httpx.RequestIDFrom(r), ws.UserID, err)
			}
			return module.Viewer{}
		}
		name := strings.TrimSpace(u.Name)
		if name == "" {
			name = u.Email
		}
		return module.Viewer{UserID: u.ID, SessionID: ws.ID, DisplayName: name, Email: u.Email}
	}
}
