package invoices

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	"github.com/louisbranch/invoicing/internal/services/invoices/mutate"
	"github.com/louisbranch/invoicing/internal/services/invoices/storage"
)

type fakeGateway struct {
	mu          sync.Mutex
	invoices    map[string]invoice.Invoice
	rows        []invoice.Row
	total       int
	customers   []invoice.Customer
	searchErr   error
	searchCalls int
	lastLimit   int
	lastOffset  int
	lastQuery   string
	// onSearch runs after the rows are read, before they are returned.
	onSearch func()
}

func (f *fakeGateway) GetInvoice(_ context.Context, invoiceID string) (invoice.Invoice, error) {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return invoice.Invoice{}, storage.ErrNotFound
	}
	return inv, nil
}

func (f *fakeGateway) SearchInvoices(_ context.Context, query string, limit int, offset int) ([]invoice.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.lastQuery = query
	f.lastLimit = limit
	f.lastOffset = offset
	if f.onSearch != nil {
		f.onSearch()
	}
	return f.rows, f.searchErr
}

func (f *fakeGateway) CountInvoices(context.Context, string) (int, error) {
	return f.total, nil
}

func (f *fakeGateway) ListCustomers(context.Context) ([]invoice.Customer, error) {
	return f.customers, nil
}

// fakeMutator returns canned outcomes and records the last submission.
type fakeMutator struct {
	outcome   mutate.Outcome
	lastID    string
	lastRaw   map[string]string
	lastCalls []string
}

func (f *fakeMutator) Create(_ context.Context, raw map[string]string) mutate.Outcome {
	f.lastCalls = append(f.lastCalls, "create")
	f.lastRaw = raw
	return f.outcome
}

func (f *fakeMutator) Update(_ context.Context, invoiceID string, raw map[string]string) mutate.Outcome {
	f.lastCalls = append(f.lastCalls, "update")
	f.lastID = invoiceID
	f.lastRaw = raw
	return f.outcome
}

func (f *fakeMutator) Delete(_ context.Context, invoiceID string) mutate.Outcome {
	f.lastCalls = append(f.lastCalls, "delete")
	f.lastID = invoiceID
	return f.outcome
}

// fakeCache keeps JSON payloads in memory the way the sqlite-backed cache
// does, including scope generations.
type fakeCache struct {
	entries     map[string][]byte
	scopes      map[string]string
	generations map[string]uint64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, scopes: map[string]string{}, generations: map[string]uint64{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dst any) bool {
	payload, ok := f.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(payload, dst) == nil
}

func (f *fakeCache) Generation(scope string) uint64 {
	return f.generations[scope]
}

func (f *fakeCache) PutIfCurrent(_ context.Context, scope string, key string, value any, gen uint64) {
	if f.generations[scope] != gen {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	f.entries[key] = payload
	f.scopes[key] = scope
}

func (f *fakeCache) Invalidate(_ context.Context, scope string) {
	f.generations[scope]++
	for key, s := range f.scopes {
		if s == scope {
			delete(f.entries, key)
			delete(f.scopes, key)
		}
	}
}
