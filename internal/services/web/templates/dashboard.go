package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
)

// DashboardView is the overview page data.
type DashboardView struct {
	Cards   invoice.Cards
	Revenue []invoice.Revenue
	Latest  []invoice.Row
}

// DashboardPage renders the overview cards, revenue by month and latest
// invoices.
func DashboardPage(view DashboardView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Dashboard</h1><div class="cards">`)
		card(h, "Collected", FormatCurrency(view.Cards.TotalPaid))
		card(h, "Pending", FormatCurrency(view.Cards.TotalPending))
		card(h, "Total Invoices", FormatCount(view.Cards.InvoiceCount))
		card(h, "Total Customers", FormatCount(view.Cards.CustomerCount))
		h.raw(`</div><div class="panels">`)
		revenueChart(h, view.Revenue)
		latestInvoices(h, view.Latest)
		h.raw(`</div>`)
	})
}

func card(h *htmlWriter, title, value string) {
	h.raw(`<div class="card"><h3>`)
	h.text(title)
	h.raw(`</h3><p class="card-value">`)
	h.text(value)
	h.raw(`</p></div>`)
}

func revenueChart(h *htmlWriter, revenue []invoice.Revenue) {
	h.raw(`<section class="revenue"><h2>Recent Revenue</h2>`)
	if len(revenue) == 0 {
		h.raw(`<p class="empty">No data available.</p></section>`)
		return
	}
	var peak int64
	for _, month := range revenue {
		peak = max(peak, month.Revenue)
	}
	h.raw(`<ol class="chart">`)
	for _, month := range revenue {
		height := 0
		if peak > 0 {
			height = int(month.Revenue * 100 / peak)
		}
		h.raw(`<li><span class="bar"`)
		h.attr("style", "height: "+strconv.Itoa(height)+"%")
		h.attr("title", FormatDollars(month.Revenue))
		h.raw(`></span><span class="label">`)
		h.text(month.Month)
		h.raw(`</span></li>`)
	}
	h.raw(`</ol></section>`)
}

func latestInvoices(h *htmlWriter, rows []invoice.Row) {
	h.raw(`<section class="latest"><h2>Latest Invoices</h2><ul>`)
	for _, row := range rows {
		h.raw(`<li>`)
		avatar(h, row.CustomerImageURL, row.CustomerName)
		h.raw(`<span class="name">`)
		h.text(row.CustomerName)
		h.raw(`</span><span class="email">`)
		h.text(row.CustomerEmail)
		h.raw(`</span><span class="amount">`)
		h.text(FormatCurrency(row.AmountCents))
		h.raw(`</span></li>`)
	}
	h.raw(`</ul></section>`)
}

func avatar(h *htmlWriter, imageURL, name string) {
	if imageURL == "" {
		return
	}
	h.raw(`<img class="avatar" width="28" height="28"`)
	h.attr("src", string(templ.URL(imageURL)))
	h.attr("alt", name+"'s profile picture")
	h.raw(`>`)
}
