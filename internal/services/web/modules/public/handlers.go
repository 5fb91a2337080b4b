package public

import (
	"context"
	"log"
	"net/http"
	"time"

	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/platform/httpx"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
	"github.com/louisbranch/invoicing/internal/services/web/templates"
)

// healthTimeout bounds a single health probe.
const healthTimeout = 2 * time.Second

type handlers struct {
	modulehandler.Base
	health module.HealthCheck
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.WritePage(w, r, "Welcome", http.StatusOK, templates.HomePage())
}

func (h handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if h.health != nil {
		ctx, cancel := context.WithTimeout(h.RequestContext(r), healthTimeout)
		defer cancel()
		if err := h.health(ctx); err != nil {
			log.Printf("health check failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (handlers) handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, "Could not find the requested page.", routepath.Root)
}
