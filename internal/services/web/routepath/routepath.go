// Package routepath centralizes web route paths shared by modules and templates.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root            = "/"
	Login           = "/login"
	LoginPrefix     = "/login/"
	Health          = "/up"
	StaticPrefix    = "/static/"
	Favicon         = "/favicon.ico"
	Dashboard       = "/dashboard"
	DashboardPrefix = "/dashboard/"
	Logout          = "/dashboard/logout"
	LogoutPrefix    = "/dashboard/logout/"

	Invoices         = "/dashboard/invoices"
	InvoicesPrefix   = "/dashboard/invoices/"
	InvoicesCreate   = "/dashboard/invoices/create"
	InvoiceEditPat   = "/dashboard/invoices/{id}/edit"
	InvoiceDeletePat = "/dashboard/invoices/{id}/delete"

	Customers       = "/dashboard/customers"
	CustomersPrefix = "/dashboard/customers/"
)

// CallbackParam is the login query parameter that carries the return path.
const CallbackParam = "callbackUrl"

// InvoiceEdit returns the edit form path for an invoice.
func InvoiceEdit(invoiceID string) string {
	return InvoicesPrefix + url.PathEscape(strings.TrimSpace(invoiceID)) + "/edit"
}

// InvoiceDelete returns the delete action path for an invoice.
func InvoiceDelete(invoiceID string) string {
	return InvoicesPrefix + url.PathEscape(strings.TrimSpace(invoiceID)) + "/delete"
}

// LoginWithCallback returns the login path that returns to callback after sign-in.
func LoginWithCallback(callback string) string {
	callback = strings.TrimSpace(callback)
	if callback == "" {
		return Login
	}
	return Login + "?" + url.Values{CallbackParam: {callback}}.Encode()
}

// InvoicesPage returns the listing path for a search query and page.
func InvoicesPage(query string, page int) string {
	values := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		values.Set("query", query)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if len(values) == 0 {
		return Invoices
	}
	return Invoices + "?" + values.Encode()
}
