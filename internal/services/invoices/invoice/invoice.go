// Package invoice defines invoice records and the form validation applied
// before any invoice is written.
package invoice

import "time"

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// DateLayout is the calendar date format stored for invoices.
const DateLayout = "2006-01-02"

// Valid reports whether s is one of the accepted statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Invoice is a stored invoice row.
type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      Status
	Date        string
}

// Customer is an invoice recipient.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// Row is an invoice joined with its customer for listings.
type Row struct {
	Invoice
	CustomerName     string
	CustomerEmail    string
	CustomerImageURL string
}

// CustomerSummary is a customer with invoice totals, in cents.
type CustomerSummary struct {
	Customer
	TotalInvoices int
	TotalPending  int64
	TotalPaid     int64
}

// Revenue is the recorded revenue for one month, in whole dollars.
type Revenue struct {
	Month   string
	Revenue int64
}

// Cards holds the dashboard overview counters. Amounts are in cents.
type Cards struct {
	InvoiceCount  int
	CustomerCount int
	TotalPaid     int64
	TotalPending  int64
}

// Today formats now as an invoice date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
