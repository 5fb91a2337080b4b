package dashboard

import (
	"context"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

var errUnavailable = apperrors.E(apperrors.KindUnavailable, "dashboard service is not configured")

func (unavailableGateway) Cards(context.Context) (invoice.Cards, error) {
	return invoice.Cards{}, errUnavailable
}

func (unavailableGateway) ListRevenue(context.Context) ([]invoice.Revenue, error) {
	return nil, errUnavailable
}

func (unavailableGateway) LatestInvoices(context.Context, int) ([]invoice.Row, error) {
	return nil, errUnavailable
}
