// Package storage declares the persistence contract for cached page data.
//
// Cached entries are derived from the invoices store and may be dropped at
// any time.
package storage
