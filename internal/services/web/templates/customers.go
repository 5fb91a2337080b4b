package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// CustomersView is the customers listing page data.
type CustomersView struct {
	Query     string
	Customers []invoice.CustomerSummary
}

// CustomersPage renders customers with their invoice totals.
func CustomersPage(view CustomersView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Customers</h1><div class="toolbar">`)
		searchForm(h, routepath.Customers, "Search customers...", view.Query)
		h.raw(`</div><table class="customers"><thead><tr><th>Name</th><th>Email</th><th>Total Invoices</th><th>Total Pending</th><th>Total Paid</th></tr></thead><tbody>`)
		for _, customer := range view.Customers {
			h.raw(`<tr><td>`)
			avatar(h, customer.ImageURL, customer.Name)
			h.text(customer.Name)
			h.raw(`</td><td>`)
			h.text(customer.Email)
			h.raw(`</td><td>`, strconv.Itoa(customer.TotalInvoices), `</td><td>`)
			h.text(FormatCurrency(customer.TotalPending))
			h.raw(`</td><td>`)
			h.text(FormatCurrency(customer.TotalPaid))
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		if len(view.Customers) == 0 {
			h.raw(`<p class="empty">No customers found.</p>`)
		}
	})
}
