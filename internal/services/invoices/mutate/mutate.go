// Package mutate runs the validated invoice create, update, and delete
// operations and tells callers where to navigate next.
package mutate

import (
	"context"
	"errors"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/invoicing/internal/platform/id"
	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	"github.com/louisbranch/invoicing/internal/services/invoices/storage"
)

// ListingPath is the invoices listing view, both the cache key invalidated
// after a successful write and the post-write destination.
const ListingPath = "/dashboard/invoices"

// Messages returned in State.Message.
const (
	MessageCreateInvalid  = "Missing Fields. Failed to Create Invoice."
	MessageUpdateInvalid  = "Missing Fields. Failed to Update Invoice."
	MessageCreateFailed   = "Database Error: Failed to Create Invoice."
	MessageUpdateFailed   = "Database Error: Failed to Update Invoice."
	MessageUpdateNotFound = "Invoice Not Found. Failed to Update Invoice."
	MessageDeleted        = "Deleted Invoice."
	MessageDeleteFailed   = "Database Error: Failed to Delete Invoice."
)

// Invalidator drops cached views for a path. It must not block on or report
// failures.
type Invalidator interface {
	Invalidate(ctx context.Context, pathKey string)
}

// State is the form state returned to the page when an operation does not
// navigate away.
type State struct {
	Message string
	Errors  invoice.FieldErrors
}

// Outcome is the result of a mutation. RedirectTo is set only on a
// successful create or update.
type Outcome struct {
	State      State
	RedirectTo string
	NotFound   bool
}

// Succeeded reports whether the operation persisted its change.
func (o Outcome) Succeeded() bool {
	return o.RedirectTo != "" || o.State.Message == MessageDeleted
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used to derive the default invoice date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the invoice id generator.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithTracer sets the tracer used for mutation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// Service mutates invoices.
type Service struct {
	store       storage.InvoiceWriter
	invalidator Invalidator
	now         func() time.Time
	newID       func() (string, error)
	tracer      trace.Tracer
}

// New returns a Service writing to store and invalidating through invalidator.
// A nil invalidator disables cache invalidation.
func New(store storage.InvoiceWriter, invalidator Invalidator, opts ...Option) *Service {
	s := &Service{
		store:       store,
		invalidator: invalidator,
		now:         time.Now,
		newID:       id.NewUUID,
		tracer:      otel.Tracer("github.com/louisbranch/invoicing/internal/services/invoices/mutate"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates raw and inserts a new invoice.
func (s *Service) Create(ctx context.Context, raw map[string]string) Outcome {
	ctx, span := s.tracer.Start(ctx, "invoices.create")
	defer span.End()

	input, errs, ok := invoice.Validate(raw)
	if !ok {
		span.SetAttributes(attribute.Bool("invoice.valid", false))
		return Outcome{State: State{Message: MessageCreateInvalid, Errors: errs}}
	}

	date := input.Date
	if date == "" {
		date = invoice.Today(s.now())
	}
	invoiceID, err := s.newID()
	if err != nil {
		return s.storageFailure(span, "create", err, MessageCreateFailed)
	}
	inv := invoice.Invoice{
		ID:          invoiceID,
		CustomerID:  input.CustomerID,
		AmountCents: input.AmountCents,
		Status:      input.Status,
		Date:        date,
	}
	span.SetAttributes(attribute.String("invoice.id", inv.ID))

	if err := s.writer().InsertInvoice(ctx, inv); err != nil {
		return s.storageFailure(span, "create", err, MessageCreateFailed)
	}
	log.Printf("invoice created id=%s customer=%s amount_cents=%d status=%s", inv.ID, inv.CustomerID, inv.AmountCents, inv.Status)
	s.invalidate(ctx)
	return Outcome{RedirectTo: ListingPath}
}

// Update validates raw and rewrites the invoice invoiceID. The stored date is
// kept unless raw supplies one.
func (s *Service) Update(ctx context.Context, invoiceID string, raw map[string]string) Outcome {
	ctx, span := s.tracer.Start(ctx, "invoices.update", trace.WithAttributes(attribute.String("invoice.id", invoiceID)))
	defer span.End()

	input, errs, ok := invoice.Validate(raw)
	if !ok {
		span.SetAttributes(attribute.Bool("invoice.valid", false))
		return Outcome{State: State{Message: MessageUpdateInvalid, Errors: errs}}
	}

	inv := invoice.Invoice{
		ID:          invoiceID,
		CustomerID:  input.CustomerID,
		AmountCents: input.AmountCents,
		Status:      input.Status,
		Date:        input.Date,
	}
	if err := s.writer().UpdateInvoice(ctx, inv); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			span.SetStatus(codes.Error, "invoice not found")
			log.Printf("invoice update skipped id=%s reason=not_found", invoiceID)
			return Outcome{State: State{Message: MessageUpdateNotFound}, NotFound: true}
		}
		return s.storageFailure(span, "update", err, MessageUpdateFailed)
	}
	log.Printf("invoice updated id=%s amount_cents=%d status=%s", inv.ID, inv.AmountCents, inv.Status)
	s.invalidate(ctx)
	return Outcome{RedirectTo: ListingPath}
}

// Delete removes the invoice invoiceID. It never redirects; the caller
// decides how to present the message.
func (s *Service) Delete(ctx context.Context, invoiceID string) Outcome {
	ctx, span := s.tracer.Start(ctx, "invoices.delete", trace.WithAttributes(attribute.String("invoice.id", invoiceID)))
	defer span.End()

	if err := s.writer().DeleteInvoice(ctx, invoiceID); err != nil {
		return s.storageFailure(span, "delete", err, MessageDeleteFailed)
	}
	log.Printf("invoice deleted id=%s", invoiceID)
	s.invalidate(ctx)
	return Outcome{State: State{Message: MessageDeleted}}
}

func (s *Service) writer() storage.InvoiceWriter {
	if s.store == nil {
		return unavailableWriter{}
	}
	return s.store
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.Invalidate(ctx, ListingPath)
}

func (s *Service) storageFailure(span trace.Span, op string, err error, message string) Outcome {
	span.RecordError(err)
	span.SetStatus(codes.Error, message)
	log.Printf("invoice %s failed: %v", op, err)
	return Outcome{State: State{Message: message}}
}

type unavailableWriter struct{}

var errUnavailable = errors.New("invoice storage is not configured")

func (unavailableWriter) InsertInvoice(context.Context, invoice.Invoice) error { return errUnavailable }

func (unavailableWriter) UpdateInvoice(context.Context, invoice.Invoice) error { return errUnavailable }

func (unavailableWriter) DeleteInvoice(context.Context, string) error { return errUnavailable }
