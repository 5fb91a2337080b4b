package public

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

func mountPublic(t *testing.T, health module.HealthCheck) http.Handler {
	t.Helper()
	m := New(health, modulehandler.NewBase(requestmeta.SchemePolicy{}))
	if m.ID() != "public" {
		t.Fatalf("ID() = %q", m.ID())
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.Root {
		t.Fatalf("prefix = %q", mount.Prefix)
	}
	return mount.Handler
}

func TestMountServesRootAndHealth(t *testing.T) {
	t.Parallel()

	handler := mountPublic(t, nil)
	for _, method := range []string{http.MethodGet, http.MethodHead} {
		for _, path := range []string{routepath.Root, routepath.Health} {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("%s %s status = %d, want %d", method, path, rr.Code, http.StatusOK)
			}
			if rr.Header().Get("Content-Type") == "" {
				t.Fatalf("%s %s missing content-type", method, path)
			}
		}
	}
}

func TestRootLinksToLogin(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountPublic(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Root, nil))
	if !strings.Contains(rr.Body.String(), `href="/login"`) {
		t.Fatalf("body missing login link: %s", rr.Body.String())
	}
}

func TestHealthReportsCheckFailure(t *testing.T) {
	t.Parallel()

	var gotDeadline bool
	handler := mountPublic(t, func(ctx context.Context) error {
		_, gotDeadline = ctx.Deadline()
		return errors.New("database is closed")
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Health, nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if rr.Body.String() != "unavailable" {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if !gotDeadline {
		t.Fatal("expected health check context to carry a deadline")
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountPublic(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "404 Not Found") {
		t.Fatalf("body missing error title: %s", rr.Body.String())
	}
}

func TestFaviconIsEmpty(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountPublic(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Favicon, nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}
