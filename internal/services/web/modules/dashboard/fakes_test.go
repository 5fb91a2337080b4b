package dashboard

import (
	"context"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
)

// fakeGateway implements Gateway for tests with configurable return values
// and call tracking.
type fakeGateway struct {
	cards       invoice.Cards
	revenue     []invoice.Revenue
	latest      []invoice.Row
	cardsErr    error
	revenueErr  error
	latestErr   error
	latestLimit int
}

func (f *fakeGateway) Cards(context.Context) (invoice.Cards, error) {
	return f.cards, f.cardsErr
}

func (f *fakeGateway) ListRevenue(context.Context) ([]invoice.Revenue, error) {
	return f.revenue, f.revenueErr
}

func (f *fakeGateway) LatestInvoices(_ context.Context, limit int) ([]invoice.Row, error) {
	f.latestLimit = limit
	return f.latest, f.latestErr
}
