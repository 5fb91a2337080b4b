package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// InvoicesView is the invoices listing page data.
type InvoicesView struct {
	Query      string
	Rows       []invoice.Row
	Page       int
	TotalPages int
}

// InvoiceFormView is the create and edit form state. Values holds the raw
// submitted fields keyed by form field name.
type InvoiceFormView struct {
	Title       string
	Action      string
	SubmitLabel string
	Customers   []invoice.Customer
	Values      map[string]string
	Message     string
	Errors      invoice.FieldErrors
}

// InvoicesPage renders the searchable, paginated invoice table.
func InvoicesPage(view InvoicesView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Invoices</h1><div class="toolbar">`)
		searchForm(h, routepath.Invoices, "Search invoices...", view.Query)
		h.raw(`<a class="button"`)
		h.href(routepath.InvoicesCreate)
		h.raw(`>Create Invoice</a></div>`)
		h.raw(`<table class="invoices"><thead><tr><th>Customer</th><th>Email</th><th>Amount</th><th>Date</th><th>Status</th><th><span class="sr-only">Actions</span></th></tr></thead><tbody>`)
		for _, row := range view.Rows {
			h.raw(`<tr><td>`)
			avatar(h, row.CustomerImageURL, row.CustomerName)
			h.text(row.CustomerName)
			h.raw(`</td><td>`)
			h.text(row.CustomerEmail)
			h.raw(`</td><td>`)
			h.text(FormatCurrency(row.AmountCents))
			h.raw(`</td><td>`)
			h.text(FormatDate(row.Date))
			h.raw(`</td><td>`)
			statusBadge(h, row.Status)
			h.raw(`</td><td class="actions"><a`)
			h.href(routepath.InvoiceEdit(row.ID))
			h.raw(`>Edit</a><form method="post"`)
			h.action(routepath.InvoiceDelete(row.ID))
			h.raw(`><button type="submit">Delete</button></form></td></tr>`)
		}
		h.raw(`</tbody></table>`)
		if len(view.Rows) == 0 {
			h.raw(`<p class="empty">No invoices found.</p>`)
		}
		pagination(h, view.Query, view.Page, view.TotalPages)
	})
}

func searchForm(h *htmlWriter, target, placeholder, query string) {
	h.raw(`<form class="search" method="get"`)
	h.action(target)
	h.raw(`><label class="sr-only" for="query">Search</label><input id="query" name="query" type="search"`)
	h.attr("placeholder", placeholder)
	h.attr("value", query)
	h.raw(`></form>`)
}

func statusBadge(h *htmlWriter, status invoice.Status) {
	label := "Pending"
	if status == invoice.StatusPaid {
		label = "Paid"
	}
	h.raw(`<span`)
	h.attr("class", "status status-"+string(status))
	h.raw(`>`)
	h.text(label)
	h.raw(`</span>`)
}

func pagination(h *htmlWriter, query string, page, totalPages int) {
	if totalPages <= 1 {
		return
	}
	h.raw(`<nav class="pagination" aria-label="Pagination">`)
	if page > 1 {
		h.raw(`<a rel="prev"`)
		h.href(routepath.InvoicesPage(query, page-1))
		h.raw(`>Previous</a>`)
	}
	for n := 1; n <= totalPages; n++ {
		if n == page {
			h.raw(`<span aria-current="page">`, strconv.Itoa(n), `</span>`)
			continue
		}
		h.raw(`<a`)
		h.href(routepath.InvoicesPage(query, n))
		h.raw(`>`, strconv.Itoa(n), `</a>`)
	}
	if page < totalPages {
		h.raw(`<a rel="next"`)
		h.href(routepath.InvoicesPage(query, page+1))
		h.raw(`>Next</a>`)
	}
	h.raw(`</nav>`)
}

// InvoiceForm renders the create or edit form with inline field errors.
func InvoiceForm(view InvoiceFormView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<nav class="breadcrumbs"><a`)
		h.href(routepath.Invoices)
		h.raw(`>Invoices</a> / <span>`)
		h.text(view.Title)
		h.raw(`</span></nav><form class="invoice-form" method="post"`)
		h.action(view.Action)
		h.raw(`>`)

		h.raw(`<label for="customer">Choose customer</label><select id="customer"`)
		h.attr("name", invoice.FieldCustomerID)
		describedBy(h, view.Errors, invoice.FieldCustomerID)
		h.raw(`><option value="">Select a customer</option>`)
		for _, customer := range view.Customers {
			h.raw(`<option`)
			h.attr("value", customer.ID)
			if customer.ID == view.Values[invoice.FieldCustomerID] {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(customer.Name)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
		fieldErrors(h, view.Errors, invoice.FieldCustomerID)

		h.raw(`<label for="amount">Choose an amount</label><input id="amount" type="number" step="0.01" placeholder="Enter USD amount"`)
		h.attr("name", invoice.FieldAmount)
		h.attr("value", view.Values[invoice.FieldAmount])
		describedBy(h, view.Errors, invoice.FieldAmount)
		h.raw(`>`)
		fieldErrors(h, view.Errors, invoice.FieldAmount)

		h.raw(`<fieldset><legend>Set the invoice status</legend>`)
		for _, status := range []invoice.Status{invoice.StatusPending, invoice.StatusPaid} {
			h.raw(`<input type="radio"`)
			h.attr("id", "status-"+string(status))
			h.attr("name", invoice.FieldStatus)
			h.attr("value", string(status))
			if view.Values[invoice.FieldStatus] == string(status) {
				h.raw(` checked`)
			}
			h.raw(`><label`)
			h.attr("for", "status-"+string(status))
			h.raw(`>`)
			statusBadge(h, status)
			h.raw(`</label>`)
		}
		h.raw(`</fieldset>`)
		fieldErrors(h, view.Errors, invoice.FieldStatus)

		h.raw(`<label for="date">Date</label><input id="date" type="date"`)
		h.attr("name", invoice.FieldDate)
		h.attr("value", view.Values[invoice.FieldDate])
		h.raw(`>`)

		if view.Message != "" {
			h.raw(`<p class="form-error" aria-live="polite">`)
			h.text(view.Message)
			h.raw(`</p>`)
		}
		h.raw(`<div class="form-actions"><a class="button secondary"`)
		h.href(routepath.Invoices)
		h.raw(`>Cancel</a><button type="submit">`)
		h.text(view.SubmitLabel)
		h.raw(`</button></div></form>`)
	})
}

func describedBy(h *htmlWriter, errs invoice.FieldErrors, field string) {
	if errs.Has(field) {
		h.attr("aria-describedby", field+"-error")
	}
}

func fieldErrors(h *htmlWriter, errs invoice.FieldErrors, field string) {
	if !errs.Has(field) {
		return
	}
	h.raw(`<div class="field-error" aria-live="polite"`)
	h.attr("id", field+"-error")
	h.raw(`>`)
	for _, msg := range errs[field] {
		h.raw(`<p>`)
		h.text(msg)
		h.raw(`</p>`)
	}
	h.raw(`</div>`)
}
