package templates

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
)

const displayDateLayout = "Jan 2, 2006"

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount in cents as US dollars.
func FormatCurrency(cents int64) string {
	if cents < 0 {
		return "-" + usd.Sprintf("$%.2f", float64(-cents)/100)
	}
	return usd.Sprintf("$%.2f", float64(cents)/100)
}

// FormatDollars renders a whole-dollar amount.
func FormatDollars(dollars int64) string {
	return usd.Sprintf("$%d", dollars)
}

// FormatCount renders an integer with digit grouping.
func FormatCount(n int) string {
	return usd.Sprintf("%d", n)
}

// FormatDate renders a stored invoice date for display, or raw when it does
// not parse.
func FormatDate(raw string) string {
	parsed, err := time.Parse(invoice.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return parsed.Format(displayDateLayout)
}

// FormatAmountInput renders cents as an ungrouped major-unit form value.
func FormatAmountInput(cents int64) string {
	return strconv.FormatFloat(invoice.FromCents(cents), 'f', 2, 64)
}
