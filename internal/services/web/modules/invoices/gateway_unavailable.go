package invoices

import (
	"context"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

var errUnavailable = apperrors.E(apperrors.KindUnavailable, "invoices service is not configured")

func (unavailableGateway) GetInvoice(context.Context, string) (invoice.Invoice, error) {
	return invoice.Invoice{}, errUnavailable
}

func (unavailableGateway) SearchInvoices(context.Context, string, int, int) ([]invoice.Row, error) {
	return nil, errUnavailable
}

func (unavailableGateway) CountInvoices(context.Context, string) (int, error) {
	return 0, errUnavailable
}

func (unavailableGateway) ListCustomers(context.Context) ([]invoice.Customer, error) {
	return nil, errUnavailable
}
