package flash

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
)

func TestWriteAndReadAndClearRoundTrip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/dashboard/invoices/inv-1/delete", nil)
	writeRR := httptest.NewRecorder()

	Write(writeRR, req, Success("Deleted Invoice."), requestmeta.SchemePolicy{})
	setCookieHeader := writeRR.Header().Get("Set-Cookie")
	if setCookieHeader == "" {
		t.Fatalf("expected Set-Cookie header")
	}
	cookie, err := http.ParseSetCookie(setCookieHeader)
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	next.AddCookie(cookie)
	readRR := httptest.NewRecorder()
	notice, ok := ReadAndClear(readRR, next, requestmeta.SchemePolicy{})
	if !ok {
		t.Fatalf("ReadAndClear() ok = false, want true")
	}
	if notice.Kind != KindSuccess || notice.Message != "Deleted Invoice." {
		t.Fatalf("notice = %+v", notice)
	}
	cleared, err := http.ParseSetCookie(readRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cleared.Name != CookieName || cleared.MaxAge >= 0 {
		t.Fatalf("clear cookie = %+v", cleared)
	}
}

func TestWriteSkipsInvalidNotices(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, notice := range []Notice{
		{Kind: KindSuccess, Message: "   "},
		{Kind: "banner", Message: "hello"},
		{Kind: KindError, Message: strings.Repeat("x", maxMessageLength+1)},
	} {
		rr := httptest.NewRecorder()
		Write(rr, req, notice, requestmeta.SchemePolicy{})
		if got := rr.Header().Get("Set-Cookie"); got != "" {
			t.Fatalf("Write(%+v) set cookie %q", notice, got)
		}
	}
}

func TestReadAndClearRejectsGarbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "not base64", value: "%%%"},
		{name: "not json", value: base64.RawURLEncoding.EncodeToString([]byte("nope"))},
		{name: "unknown kind", value: base64.RawURLEncoding.EncodeToString([]byte(`{"kind":"odd","message":"x"}`))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: tc.value})
			rr := httptest.NewRecorder()
			if _, ok := ReadAndClear(rr, req, requestmeta.SchemePolicy{}); ok {
				t.Fatalf("ReadAndClear() ok = true, want false")
			}
			if rr.Header().Get("Set-Cookie") == "" {
				t.Fatalf("expected garbage cookie to be cleared")
			}
		})
	}

	if _, ok := ReadAndClear(nil, nil, requestmeta.SchemePolicy{}); ok {
		t.Fatalf("ReadAndClear(nil) ok = true")
	}
}

func TestFailureNoticeKind(t *testing.T) {
	t.Parallel()

	if got := Failure("Database Error: Failed to Delete Invoice.").Kind; got != KindError {
		t.Fatalf("Failure().Kind = %q, want %q", got, KindError)
	}
}
