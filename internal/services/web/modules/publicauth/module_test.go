package publicauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/invoicing/internal/services/auth/authn"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/invoicing/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

type fakeAuthenticator struct {
	session   authn.Session
	message   string
	err       error
	lastCreds authn.Credentials
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, creds authn.Credentials) (authn.Session, string, error) {
	f.lastCreds = creds
	return f.session, f.message, f.err
}

type fakeRevoker struct {
	tokens []string
	err    error
}

func (f *fakeRevoker) Revoke(_ context.Context, token string) error {
	f.tokens = append(f.tokens, token)
	return f.err
}

func testBase() modulehandler.Base {
	return modulehandler.NewBase(requestmeta.SchemePolicy{})
}

func loginHandler(t *testing.T, authenticator Authenticator) http.Handler {
	t.Helper()
	mount, err := New(authenticator, testBase()).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.LoginPrefix {
		t.Fatalf("prefix = %q", mount.Prefix)
	}
	return mount.Handler
}

func postLogin(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, routepath.Login, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == sessioncookie.Name {
			return cookie
		}
	}
	return nil
}

func TestLoginFormKeepsSafeCallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		callback string
		want     string
	}{
		{name: "local path", callback: "/dashboard/invoices?page=2", want: `value="/dashboard/invoices?page=2"`},
		{name: "absolute url", callback: "https://evil.example/", want: `value="/dashboard"`},
		{name: "missing", callback: "", want: `value="/dashboard"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			loginHandler(t, &fakeAuthenticator{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.LoginWithCallback(tc.callback), nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tc.want) {
				t.Fatalf("body missing %s", tc.want)
			}
		})
	}
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	t.Parallel()

	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	authenticator := &fakeAuthenticator{session: authn.Session{UserID: "u1", SessionID: "s1", Token: "signed-token", ExpiresAt: expires}}
	rr := httptest.NewRecorder()
	loginHandler(t, authenticator).ServeHTTP(rr, postLogin(url.Values{
		"email":                 {" user@nextmail.com "},
		"password":              {"123456"},
		routepath.CallbackParam: {"/dashboard/customers"},
	}))

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != routepath.Customers {
		t.Fatalf("Location = %q", got)
	}
	cookie := sessionCookie(rr)
	if cookie == nil || cookie.Value != "signed-token" || !cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", cookie)
	}
	if authenticator.lastCreds.Email != "user@nextmail.com" || authenticator.lastCreds.Password != "123456" {
		t.Fatalf("creds = %+v", authenticator.lastCreds)
	}
}

func TestLoginRejectsExternalCallback(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	loginHandler(t, &fakeAuthenticator{session: authn.Session{Token: "t"}}).ServeHTTP(rr, postLogin(url.Values{
		routepath.CallbackParam: {"//evil.example/steal"},
	}))
	if got := rr.Header().Get("Location"); got != routepath.Dashboard {
		t.Fatalf("Location = %q, want %q", got, routepath.Dashboard)
	}
}

func TestLoginFailureShowsMessage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	loginHandler(t, &fakeAuthenticator{message: authn.MessageInvalidCredentials}).ServeHTTP(rr, postLogin(url.Values{
		"email":    {"user@nextmail.com"},
		"password": {"wrong-password"},
	}))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	body := rr.Body.String()
	if !strings.Contains(body, authn.MessageInvalidCredentials) || !strings.Contains(body, `value="user@nextmail.com"`) {
		t.Fatalf("body missing message or email: %s", body)
	}
	if sessionCookie(rr) != nil {
		t.Fatal("did not expect a session cookie")
	}
}

func TestLoginUnexpectedErrorIsServerError(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	loginHandler(t, &fakeAuthenticator{err: errors.New("database is locked")}).ServeHTTP(rr, postLogin(url.Values{}))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rr.Body.String(), "database is locked") {
		t.Fatal("internal error leaked to the page")
	}
}

func TestLoginWithoutAuthenticatorIsUnavailable(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	loginHandler(t, nil).ServeHTTP(rr, postLogin(url.Values{}))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestSignOutRevokesAndClearsCookie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cookie      string
		revokeErr   error
		wantRevoked int
	}{
		{name: "with session", cookie: "signed-token", wantRevoked: 1},
		{name: "revoke failure still clears", cookie: "signed-token", revokeErr: errors.New("boom"), wantRevoked: 1},
		{name: "without session", wantRevoked: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			revoker := &fakeRevoker{err: tc.revokeErr}
			m := NewSignOut(revoker, testBase())
			if m.ID() != "signout" {
				t.Fatalf("ID() = %q", m.ID())
			}
			mount, err := m.Mount()
			if err != nil {
				t.Fatalf("Mount() error = %v", err)
			}
			req := httptest.NewRequest(http.MethodPost, routepath.Logout, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: tc.cookie})
			}
			rr := httptest.NewRecorder()
			mount.Handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusFound || rr.Header().Get("Location") != routepath.Login {
				t.Fatalf("response = %d %q", rr.Code, rr.Header().Get("Location"))
			}
			if len(revoker.tokens) != tc.wantRevoked {
				t.Fatalf("revoked = %v", revoker.tokens)
			}
			cookie := sessionCookie(rr)
			if cookie == nil || cookie.MaxAge >= 0 {
				t.Fatalf("expected cleared cookie, got %+v", cookie)
			}
		})
	}
}

func TestSignOutRejectsGet(t *testing.T) {
	t.Parallel()

	mount, err := NewSignOut(&fakeRevoker{}, testBase()).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Logout, nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
