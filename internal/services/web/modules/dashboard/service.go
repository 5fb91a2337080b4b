// Package dashboard renders the overview page: counters, revenue by month
// and the latest invoices.
package dashboard

import (
	"context"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
	"github.com/louisbranch/invoicing/internal/services/web/templates"
)

// LatestInvoicesLimit is how many recent invoices the overview lists.
const LatestInvoicesLimit = 5

// Gateway loads overview data.
type Gateway interface {
	Cards(ctx context.Context) (invoice.Cards, error)
	ListRevenue(ctx context.Context) ([]invoice.Revenue, error)
	LatestInvoices(ctx context.Context, limit int) ([]invoice.Row, error)
}

type service struct {
	gateway Gateway
}

func newService(gateway Gateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) loadOverview(ctx context.Context) (templates.DashboardView, error) {
	cards, err := s.gateway.Cards(ctx)
	if err != nil {
		return templates.DashboardView{}, apperrors.Wrap(apperrors.KindUnavailable, "Failed to fetch card data.", err)
	}
	revenue, err := s.gateway.ListRevenue(ctx)
	if err != nil {
		return templates.DashboardView{}, apperrors.Wrap(apperrors.KindUnavailable, "Failed to fetch revenue data.", err)
	}
	latest, err := s.gateway.LatestInvoices(ctx, LatestInvoicesLimit)
	if err != nil {
		return templates.DashboardView{}, apperrors.Wrap(apperrors.KindUnavailable, "Failed to fetch the latest invoices.", err)
	}
	return templates.DashboardView{Cards: cards, Revenue: revenue, Latest: latest}, nil
}
