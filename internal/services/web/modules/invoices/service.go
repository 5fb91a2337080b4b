// Package invoices serves the invoice listing and the forms that create,
// edit, and delete invoices.
package invoices

import (
	"context"
	"errors"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	"github.com/louisbranch/invoicing/internal/services/invoices/mutate"
	"github.com/louisbranch/invoicing/internal/services/invoices/storage"
	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
	"github.com/louisbranch/invoicing/internal/services/web/templates"
)

// PageSize is the number of invoices on one listing page.
const PageSize = 6

// Gateway loads invoice and customer data for pages.
type Gateway interface {
	GetInvoice(ctx context.Context, invoiceID string) (invoice.Invoice, error)
	SearchInvoices(ctx context.Context, query string, limit int, offset int) ([]invoice.Row, error)
	CountInvoices(ctx context.Context, query string) (int, error)
	ListCustomers(ctx context.Context) ([]invoice.Customer, error)
}

// Mutator applies validated invoice writes.
type Mutator interface {
	Create(ctx context.Context, raw map[string]string) mutate.Outcome
	Update(ctx context.Context, invoiceID string, raw map[string]string) mutate.Outcome
	Delete(ctx context.Context, invoiceID string) mutate.Outcome
}

// ListingCache stores rendered listing data keyed by request path. Writes
// carry the scope generation taken before the read they came from.
type ListingCache interface {
	Get(ctx context.Context, key string, dst any) bool
	Generation(scope string) uint64
	PutIfCurrent(ctx context.Context, scope string, key string, value any, gen uint64)
}

// listingPage is the cached unit for one (query, page) pair.
type listingPage struct {
	Rows       []invoice.Row `json:"rows"`
	TotalPages int           `json:"total_pages"`
}

type service struct {
	gateway Gateway
	mutator Mutator
	cache   ListingCache
}

func newService(gateway Gateway, mutator Mutator, cache ListingCache) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if mutator == nil {
		mutator = mutate.New(nil, nil)
	}
	return service{gateway: gateway, mutator: mutator, cache: cache}
}

// totalPages returns ceil(total/PageSize).
func totalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

func (s service) loadListing(ctx context.Context, query string, page int) (templates.InvoicesView, error) {
	if page < 1 {
		page = 1
	}
	view := templates.InvoicesView{Query: query, Page: page}

	key := routepath.InvoicesPage(query, page)
	var gen uint64
	if s.cache != nil {
		gen = s.cache.Generation(routepath.Invoices)
	}
	var cached listingPage
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		view.Rows = cached.Rows
		view.TotalPages = cached.TotalPages
		return view, nil
	}

	total, err := s.gateway.CountInvoices(ctx, query)
	if err != nil {
		return templates.InvoicesView{}, apperrors.Wrap(apperrors.KindUnavailable, "Failed to fetch total number of invoices.", err)
	}
	rows, err := s.gateway.SearchInvoices(ctx, query, PageSize, (page-1)*PageSize)
	if err != nil {
		return templates.InvoicesView{}, apperrors.Wrap(apperrors.KindUnavailable, "Failed to fetch invoices.", err)
	}
	view.Rows = rows
	view.TotalPages = totalPages(total)

	if s.cache != nil {
		s.cache.PutIfCurrent(ctx, routepath.Invoices, key, listingPage{Rows: rows, TotalPages: view.TotalPages}, gen)
	}
	return view, nil
}

func (s service) loadCustomers(ctx context.Context) ([]invoice.Customer, error) {
	customers, err := s.gateway.ListCustomers(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "Failed to fetch all customers.", err)
	}
	return customers, nil
}

// loadInvoice returns the invoice form values for invoiceID.
func (s service) loadInvoice(ctx context.Context, invoiceID string) (map[string]string, error) {
	inv, err := s.gateway.GetInvoice(ctx, invoiceID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.KindNotFound, "Could not find the requested invoice.", err)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "Failed to fetch invoice.", err)
	}
	return map[string]string{
		invoice.FieldCustomerID: inv.CustomerID,
		invoice.FieldAmount:     templates.FormatAmountInput(inv.AmountCents),
		invoice.FieldStatus:     string(inv.Status),
		invoice.FieldDate:       inv.Date,
	}, nil
}
