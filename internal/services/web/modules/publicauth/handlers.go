package publicauth

import (
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/invoicing/internal/services/auth/authn"
	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
	"github.com/louisbranch/invoicing/internal/services/web/platform/httpx"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/invoicing/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
	"github.com/louisbranch/invoicing/internal/services/web/templates"
)

const (
	fieldEmail    = "email"
	fieldPassword = "password"
	loginTitle    = "Login"
)

type loginHandlers struct {
	modulehandler.Base
	authenticator Authenticator
}

func (h loginHandlers) handleForm(w http.ResponseWriter, r *http.Request) {
	callback := requestmeta.SafeReturnPath(r.URL.Query().Get(routepath.CallbackParam), routepath.Dashboard)
	h.WritePage(w, r, loginTitle, http.StatusOK, templates.LoginPage(templates.LoginView{CallbackURL: callback}))
}

func (h loginHandlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ParseForm(r)
	if err != nil {
		h.WriteError(w, r, err, routepath.Login)
		return
	}
	callback := requestmeta.SafeReturnPath(raw[routepath.CallbackParam], routepath.Dashboard)
	creds := authn.Credentials{Email: strings.TrimSpace(raw[fieldEmail]), Password: raw[fieldPassword]}

	if h.authenticator == nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindUnavailable, "login is not configured"), routepath.Root)
		return
	}
	session, message, err := h.authenticator.Authenticate(h.RequestContext(r), creds)
	if err != nil {
		h.WriteError(w, r, err, routepath.Login)
		return
	}
	if message != "" {
		h.WritePage(w, r, loginTitle, http.StatusUnauthorized, templates.LoginPage(templates.LoginView{
			Email:       creds.Email,
			CallbackURL: callback,
			Message:     message,
		}))
		return
	}
	sessioncookie.Write(w, r, session.Token, session.ExpiresAt, h.Policy())
	log.Printf("user signed in user_id=%s session_id=%s request_id=%s", session.UserID, session.SessionID, httpx.RequestIDFrom(r))
	h.Redirect(w, r, callback)
}

func (h loginHandlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, "Could not find the requested page.", routepath.Login)
}

type signOutHandlers struct {
	modulehandler.Base
	sessions SessionRevoker
}

func (h signOutHandlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := sessioncookie.Read(r); ok && h.sessions != nil {
		if err := h.sessions.Revoke(h.RequestContext(r), token); err != nil {
			log.Printf("session revoke failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		}
	}
	sessioncookie.Clear(w, r, h.Policy())
	h.Redirect(w, r, routepath.Login)
}
