package invoices

import (
	"net/http"

	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Invoices, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.InvoicesPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.InvoicesCreate, h.handleCreateForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.InvoicesCreate, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.InvoiceEditPat, h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.InvoiceEditPat, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.InvoiceDeletePat, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.InvoicesPrefix+"{rest...}", h.handleNotFound)
}
