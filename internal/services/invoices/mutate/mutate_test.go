package mutate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	"github.com/louisbranch/invoicing/internal/services/invoices/storage"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)
}

func newTestService(w *fakeWriter, inv *fakeInvalidator) *Service {
	return New(w, inv,
		WithClock(fixedClock),
		WithIDGenerator(func() (string, error) { return "inv-new", nil }),
	)
}

func validForm() map[string]string {
	return map[string]string{
		"customerId": "cust-1",
		"amount":     "19.99",
		"status":     "pending",
	}
}

func TestCreatePersistsCentsAndTodayThenRedirects(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	inv := &fakeInvalidator{}
	out := newTestService(w, inv).Create(context.Background(), validForm())

	if out.RedirectTo != ListingPath {
		t.Fatalf("redirect = %q, want %q", out.RedirectTo, ListingPath)
	}
	if len(w.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(w.inserted))
	}
	got := w.inserted[0]
	want := invoice.Invoice{ID: "inv-new", CustomerID: "cust-1", AmountCents: 1999, Status: invoice.StatusPending, Date: "2026-10-14"}
	if got != want {
		t.Fatalf("inserted = %+v, want %+v", got, want)
	}
	if len(inv.paths) != 1 || inv.paths[0] != ListingPath {
		t.Fatalf("invalidated = %v, want [%s]", inv.paths, ListingPath)
	}
}

func TestCreateKeepsSuppliedDate(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	form := validForm()
	form["date"] = "2025-12-31"
	newTestService(w, &fakeInvalidator{}).Create(context.Background(), form)

	if w.inserted[0].Date != "2025-12-31" {
		t.Fatalf("date = %q, want supplied date", w.inserted[0].Date)
	}
}

func TestCreateValidationFailureTouchesNothing(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	inv := &fakeInvalidator{}
	form := validForm()
	form["amount"] = "0"
	out := newTestService(w, inv).Create(context.Background(), form)

	if out.State.Message != "Missing Fields. Failed to Create Invoice." {
		t.Fatalf("message = %q", out.State.Message)
	}
	if got := out.State.Errors.First("amount"); got != "Please enter an amount greater than $0." {
		t.Fatalf("amount error = %q", got)
	}
	if out.RedirectTo != "" {
		t.Fatalf("unexpected redirect %q", out.RedirectTo)
	}
	if len(w.inserted) != 0 || len(inv.paths) != 0 {
		t.Fatalf("expected no side effects, inserted=%d invalidated=%v", len(w.inserted), inv.paths)
	}
}

func TestCreateAndUpdateRejectUnrepresentableAmounts(t *testing.T) {
	t.Parallel()

	for _, amount := range []string{"1e300", "99999999999999999999", "0.001"} {
		w := &fakeWriter{}
		inv := &fakeInvalidator{}
		svc := newTestService(w, inv)
		form := validForm()
		form["amount"] = amount

		created := svc.Create(context.Background(), form)
		if got := created.State.Errors.First("amount"); got != "Please enter an amount greater than $0." {
			t.Fatalf("create amount %q error = %q", amount, got)
		}
		updated := svc.Update(context.Background(), "inv-7", form)
		if got := updated.State.Errors.First("amount"); got != "Please enter an amount greater than $0." {
			t.Fatalf("update amount %q error = %q", amount, got)
		}
		if len(w.inserted) != 0 || len(w.updated) != 0 || len(inv.paths) != 0 {
			t.Fatalf("amount %q reached storage: inserted=%v updated=%v", amount, w.inserted, w.updated)
		}
	}
}

func TestCreateStorageFailure(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{insertErr: errors.New("FOREIGN KEY constraint failed")}
	inv := &fakeInvalidator{}
	out := newTestService(w, inv).Create(context.Background(), validForm())

	if out.State.Message != "Database Error: Failed to Create Invoice." {
		t.Fatalf("message = %q", out.State.Message)
	}
	if out.RedirectTo != "" || len(inv.paths) != 0 {
		t.Fatalf("expected no redirect and no invalidation, got %q %v", out.RedirectTo, inv.paths)
	}
}

func TestCreateIDFailureReportsStorageError(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	svc := New(w, nil, WithIDGenerator(func() (string, error) { return "", fmt.Errorf("entropy") }))
	out := svc.Create(context.Background(), validForm())
	if out.State.Message != MessageCreateFailed {
		t.Fatalf("message = %q", out.State.Message)
	}
	if len(w.inserted) != 0 {
		t.Fatal("expected no insert")
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		form        map[string]string
		err         error
		wantMessage string
		wantRedir   string
		wantInval   bool
		notFound    bool
	}{
		{name: "success", form: validForm(), wantRedir: ListingPath, wantInval: true},
		{name: "invalid", form: map[string]string{"status": "late"}, wantMessage: "Missing Fields. Failed to Update Invoice."},
		{name: "storage failure", form: validForm(), err: errors.New("database is locked"), wantMessage: "Database Error: Failed to Update Invoice."},
		{name: "missing row", form: validForm(), err: fmt.Errorf("wrap: %w", storage.ErrNotFound), wantMessage: MessageUpdateNotFound, notFound: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := &fakeWriter{updateErr: tc.err}
			inv := &fakeInvalidator{}
			out := newTestService(w, inv).Update(context.Background(), "inv-7", tc.form)

			if out.State.Message != tc.wantMessage {
				t.Fatalf("message = %q, want %q", out.State.Message, tc.wantMessage)
			}
			if out.RedirectTo != tc.wantRedir {
				t.Fatalf("redirect = %q, want %q", out.RedirectTo, tc.wantRedir)
			}
			if (len(inv.paths) > 0) != tc.wantInval {
				t.Fatalf("invalidated = %v, want %t", inv.paths, tc.wantInval)
			}
			if out.NotFound != tc.notFound {
				t.Fatalf("not found = %t, want %t", out.NotFound, tc.notFound)
			}
		})
	}
}

func TestUpdateLeavesDateEmptyWhenOmitted(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	newTestService(w, &fakeInvalidator{}).Update(context.Background(), "inv-7", validForm())

	got := w.updated[0]
	if got.ID != "inv-7" || got.AmountCents != 1999 {
		t.Fatalf("updated = %+v", got)
	}
	if got.Date != "" {
		t.Fatalf("date = %q, want empty so the stored date is kept", got.Date)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	inv := &fakeInvalidator{}
	out := newTestService(w, inv).Delete(context.Background(), "inv-9")
	if out.State.Message != "Deleted Invoice." {
		t.Fatalf("message = %q", out.State.Message)
	}
	if out.RedirectTo != "" {
		t.Fatalf("delete must not redirect, got %q", out.RedirectTo)
	}
	if !out.Succeeded() {
		t.Fatal("expected success")
	}
	if len(w.deleted) != 1 || w.deleted[0] != "inv-9" {
		t.Fatalf("deleted = %v", w.deleted)
	}
	if len(inv.paths) != 1 {
		t.Fatalf("invalidated = %v", inv.paths)
	}
}

func TestDeleteStorageFailure(t *testing.T) {
	t.Parallel()

	inv := &fakeInvalidator{}
	out := newTestService(&fakeWriter{deleteErr: errors.New("disk I/O error")}, inv).Delete(context.Background(), "inv-9")
	if out.State.Message != "Database Error: Failed to Delete Invoice." {
		t.Fatalf("message = %q", out.State.Message)
	}
	if out.Succeeded() {
		t.Fatal("expected failure")
	}
	if len(inv.paths) != 0 {
		t.Fatalf("expected no invalidation, got %v", inv.paths)
	}
}

func TestNilStoreReportsDatabaseErrors(t *testing.T) {
	t.Parallel()

	svc := New(nil, nil)
	if out := svc.Create(context.Background(), validForm()); out.State.Message != MessageCreateFailed {
		t.Fatalf("create message = %q", out.State.Message)
	}
	if out := svc.Delete(context.Background(), "x"); out.State.Message != MessageDeleteFailed {
		t.Fatalf("delete message = %q", out.State.Message)
	}
}
