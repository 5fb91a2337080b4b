// Package flash carries a one-shot notice, such as "Created Invoice.", from a
// mutation handler across its redirect to the next rendered page.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
)

// CookieName holds the pending notice.
const CookieName = "invoicing_flash"

const maxMessageLength = 256

// Kind selects how a notice is styled.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is one pending message.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Success(message string) Notice { return Notice{Kind: KindSuccess, Message: message} }

func Failure(message string) Notice { return Notice{Kind: KindError, Message: message} }

// valid returns the canonical form of n, or false when n cannot be shown.
func (n Notice) valid() (Notice, bool) {
	n.Message = strings.TrimSpace(n.Message)
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	if n.Message == "" || len(n.Message) > maxMessageLength {
		return Notice{}, false
	}
	if n.Kind != KindSuccess && n.Kind != KindError {
		return Notice{}, false
	}
	return n, true
}

// Write sets the notice cookie. Invalid notices are dropped silently.
func Write(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	notice, ok := notice.valid()
	if !ok {
		return
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return
	}
	http.SetCookie(w, cookie(r, policy, base64.RawURLEncoding.EncodeToString(payload), 0))
}

// ReadAndClear returns the pending notice, if any, and expires the cookie so
// it renders once.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	stored, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		http.SetCookie(w, cookie(r, policy, "", -1))
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(stored.Value))
	if err != nil || len(raw) == 0 {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(raw, &notice); err != nil {
		return Notice{}, false
	}
	return notice.valid()
}

func cookie(r *http.Request, policy requestmeta.SchemePolicy, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
}
