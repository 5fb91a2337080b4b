// Package storage declares the persistence contracts for invoices, customers,
// and revenue.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// InvoiceWriter performs the single-statement invoice mutations.
type InvoiceWriter interface {
	// InsertInvoice stores a new invoice row.
	InsertInvoice(ctx context.Context, inv invoice.Invoice) error
	// UpdateInvoice rewrites customer, amount, and status for inv.ID, and the
	// date when inv.Date is non-empty. It returns ErrNotFound when no row
	// matches.
	UpdateInvoice(ctx context.Context, inv invoice.Invoice) error
	// DeleteInvoice removes the row for invoiceID. Missing rows are not an
	// error.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceReader serves the dashboard and listing queries.
type InvoiceReader interface {
	GetInvoice(ctx context.Context, invoiceID string) (invoice.Invoice, error)
	LatestInvoices(ctx context.Context, limit int) ([]invoice.Row, error)
	SearchInvoices(ctx context.Context, query string, limit int, offset int) ([]invoice.Row, error)
	CountInvoices(ctx context.Context, query string) (int, error)
	Cards(ctx context.Context) (invoice.Cards, error)
}

// CustomerStore persists customers.
type CustomerStore interface {
	PutCustomer(ctx context.Context, customer invoice.Customer) error
	ListCustomers(ctx context.Context) ([]invoice.Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]invoice.CustomerSummary, error)
}

// RevenueStore persists monthly revenue.
type RevenueStore interface {
	PutRevenue(ctx context.Context, revenue invoice.Revenue) error
	ListRevenue(ctx context.Context) ([]invoice.Revenue, error)
}

// Store is the full invoices persistence surface.
type Store interface {
	InvoiceWriter
	InvoiceReader
	CustomerStore
	RevenueStore
	Ping(ctx context.Context) error
	Close() error
}
