package invoices

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/invoicing/internal/services/invoices/mutate"
	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
	"github.com/louisbranch/invoicing/internal/services/web/platform/flash"
	"github.com/louisbranch/invoicing/internal/services/web/platform/httpx"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
	"github.com/louisbranch/invoicing/internal/services/web/templates"
)

const (
	titleCreate = "Create Invoice"
	titleEdit   = "Edit Invoice"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := strings.TrimSpace(values.Get("query"))
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	view, err := h.service.loadListing(h.RequestContext(r), query, page)
	if err != nil {
		h.WriteError(w, r, err, routepath.Dashboard)
		return
	}
	h.WritePage(w, r, "Invoices", http.StatusOK, templates.InvoicesPage(view))
}

func (h handlers) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, h.createForm(nil, mutate.State{}))
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ParseForm(r)
	if err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "Could not read the submitted form.", err), routepath.Invoices)
		return
	}
	outcome := h.service.mutator.Create(h.RequestContext(r), raw)
	if outcome.RedirectTo != "" {
		h.Flash(w, r, flash.Success("Created Invoice."))
		h.Redirect(w, r, outcome.RedirectTo)
		return
	}
	h.renderForm(w, r, failureStatus(outcome.State), h.createForm(raw, outcome.State))
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	invoiceID := r.PathValue("id")
	values, err := h.service.loadInvoice(h.RequestContext(r), invoiceID)
	if err != nil {
		h.WriteError(w, r, err, routepath.Invoices)
		return
	}
	h.renderForm(w, r, http.StatusOK, h.editForm(invoiceID, values, mutate.State{}))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	invoiceID := r.PathValue("id")
	raw, err := httpx.ParseForm(r)
	if err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "Could not read the submitted form.", err), routepath.Invoices)
		return
	}
	outcome := h.service.mutator.Update(h.RequestContext(r), invoiceID, raw)
	switch {
	case outcome.RedirectTo != "":
		h.Flash(w, r, flash.Success("Updated Invoice."))
		h.Redirect(w, r, outcome.RedirectTo)
	case outcome.NotFound:
		h.WriteNotFound(w, r, outcome.State.Message, routepath.Invoices)
	default:
		h.renderForm(w, r, failureStatus(outcome.State), h.editForm(invoiceID, raw, outcome.State))
	}
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	outcome := h.service.mutator.Delete(h.RequestContext(r), r.PathValue("id"))
	if outcome.Succeeded() {
		h.Flash(w, r, flash.Success(outcome.State.Message))
	} else {
		h.Flash(w, r, flash.Failure(outcome.State.Message))
	}
	h.Redirect(w, r, routepath.Invoices)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r, "Could not find the requested page.", routepath.Invoices)
}

func (h handlers) createForm(values map[string]string, state mutate.State) templates.InvoiceFormView {
	return templates.InvoiceFormView{
		Title:       titleCreate,
		Action:      routepath.InvoicesCreate,
		SubmitLabel: titleCreate,
		Values:      values,
		Message:     state.Message,
		Errors:      state.Errors,
	}
}

func (h handlers) editForm(invoiceID string, values map[string]string, state mutate.State) templates.InvoiceFormView {
	return templates.InvoiceFormView{
		Title:       titleEdit,
		Action:      routepath.InvoiceEdit(invoiceID),
		SubmitLabel: titleEdit,
		Values:      values,
		Message:     state.Message,
		Errors:      state.Errors,
	}
}

// renderForm loads customer options into view and writes the form page.
func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, view templates.InvoiceFormView) {
	customers, err := h.service.loadCustomers(h.RequestContext(r))
	if err != nil {
		h.WriteError(w, r, err, routepath.Invoices)
		return
	}
	view.Customers = customers
	h.WritePage(w, r, view.Title, status, templates.InvoiceForm(view))
}

// failureStatus maps a non-navigating mutation state to a response status.
func failureStatus(state mutate.State) int {
	if len(state.Errors) > 0 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
