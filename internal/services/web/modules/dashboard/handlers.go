package dashboard

import (
	"net/http"

	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
	"github.com/louisbranch/invoicing/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.loadOverview(h.RequestContext(r))
	if err != nil {
		h.WriteError(w, r, err, "")
		return
	}
	h.WritePage(w, r, "Dashboard", http.StatusOK, templates.DashboardPage(view))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, "Could not find the requested page.", routepath.Dashboard)
}
