// Package customers serves the searchable customers listing.
package customers

import (
	"context"
	"net/http"
	"strings"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	module "github.com/louisbranch/invoicing/internal/services/web/module"
	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
	"github.com/louisbranch/invoicing/internal/services/web/templates"
)

// Gateway searches customers with their invoice totals.
type Gateway interface {
	SearchCustomers(ctx context.Context, query string) ([]invoice.CustomerSummary, error)
}

// Module provides the customers listing.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
}

// New returns a customers module reading from gateway.
func New(gateway Gateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "customers" }

// Mount wires customers route handlers.
func (m Module) Mount() (module.Mount, error) {
	h := handlers{Base: m.base, gateway: m.gateway}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Customers, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.CustomersPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.CustomersPrefix+"{rest...}", h.handleNotFound)
	return module.Mount{Prefix: routepath.CustomersPrefix, Handler: mux}, nil
}

type handlers struct {
	modulehandler.Base
	gateway Gateway
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	if h.gateway == nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindUnavailable, "customers service is not configured"), routepath.Dashboard)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	customers, err := h.gateway.SearchCustomers(h.RequestContext(r), query)
	if err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "Failed to fetch customer table.", err), routepath.Dashboard)
		return
	}
	h.WritePage(w, r, "Customers", http.StatusOK, templates.CustomersPage(templates.CustomersView{Query: query, Customers: customers}))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, "Could not find the requested page.", routepath.Customers)
}
