// Package sqlite provides the web view cache persistence adapter backed by
// SQLite.
//
// The store only contains derived state that can be rebuilt from the
// invoices store.
package sqlite
