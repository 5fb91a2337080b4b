package mutate

import (
	"context"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
)

type fakeWriter struct {
	inserted  []invoice.Invoice
	updated   []invoice.Invoice
	deleted   []string
	insertErr error
	updateErr error
	deleteErr error
}

func (f *fakeWriter) InsertInvoice(_ context.Context, inv invoice.Invoice) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, inv)
	return nil
}

func (f *fakeWriter) UpdateInvoice(_ context.Context, inv invoice.Invoice) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, inv)
	return nil
}

func (f *fakeWriter) DeleteInvoice(_ context.Context, invoiceID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, invoiceID)
	return nil
}

type fakeInvalidator struct {
	paths []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, pathKey string) {
	f.paths = append(f.paths, pathKey)
}
