// Package sqlite implements invoice persistence on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/invoicing/internal/platform/storage/sqliteconn"
	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	"github.com/louisbranch/invoicing/internal/services/invoices/storage"
	"github.com/louisbranch/invoicing/internal/services/invoices/storage/sqlite/migrations"
)

var _ storage.Store = (*Store)(nil)

var errNotConfigured = errors.New("storage is not configured")

// Store provides SQLite-backed persistence for invoices, customers, and
// revenue.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates an invoices SQLite store.
func Open(path string) (*Store, error) {
	sqlDB, err := sqliteconn.Open(context.Background(), path, migrations.FS, "")
	if err != nil {
		return nil, err
	}
	return &Store{sqlDB: sqlDB}, nil
}

// New wraps an already opened database. Migrations are not applied.
func New(sqlDB *sql.DB) *Store {
	return &Store{sqlDB: sqlDB}
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	return nil
}

// InsertInvoice stores a new invoice row.
func (s *Store) InsertInvoice(ctx context.Context, inv invoice.Invoice) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(inv.ID) == "" {
		return fmt.Errorf("invoice id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.CustomerID, inv.AmountCents, string(inv.Status), inv.Date,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// UpdateInvoice rewrites the mutable invoice fields keyed by id.
func (s *Store) UpdateInvoice(ctx context.Context, inv invoice.Invoice) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	var (
		res sql.Result
		err error
	)
	if inv.Date == "" {
		res, err = s.sqlDB.ExecContext(ctx,
			`UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?`,
			inv.CustomerID, inv.AmountCents, string(inv.Status), inv.ID,
		)
	} else {
		res, err = s.sqlDB.ExecContext(ctx,
			`UPDATE invoices SET customer_id = ?, amount = ?, status = ?, date = ? WHERE id = ?`,
			inv.CustomerID, inv.AmountCents, string(inv.Status), inv.Date, inv.ID,
		)
	}
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update invoice rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes an invoice row. Deleting a missing row succeeds.
func (s *Store) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// GetInvoice loads one invoice by id.
func (s *Store) GetInvoice(ctx context.Context, invoiceID string) (invoice.Invoice, error) {
	if err := s.ready(ctx); err != nil {
		return invoice.Invoice{}, err
	}
	var inv invoice.Invoice
	var status string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, customer_id, amount, status, date FROM invoices WHERE id = ?`,
		invoiceID,
	).Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &status, &inv.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return invoice.Invoice{}, storage.ErrNotFound
	}
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("get invoice: %w", err)
	}
	inv.Status = invoice.Status(status)
	return inv, nil
}

const invoiceRowColumns = `i.id, i.customer_id, i.amount, i.status, i.date, c.name, c.email, c.image_url`

// LatestInvoices returns the most recent invoices by date.
func (s *Store) LatestInvoices(ctx context.Context, limit int) ([]invoice.Row, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+invoiceRowColumns+`
		 FROM invoices i
		 JOIN customers c ON c.id = i.customer_id
		 ORDER BY i.date DESC, i.id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("latest invoices: %w", err)
	}
	return scanInvoiceRows(rows)
}

const invoiceSearchFilter = `
	c.name LIKE ?1 OR
	c.email LIKE ?1 OR
	CAST(i.amount AS TEXT) LIKE ?1 OR
	i.date LIKE ?1 OR
	i.status LIKE ?1`

// SearchInvoices returns one page of invoices whose customer name, email,
// amount, date, or status contains query.
func (s *Store) SearchInvoices(ctx context.Context, query string, limit int, offset int) ([]invoice.Row, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+invoiceRowColumns+`
		 FROM invoices i
		 JOIN customers c ON c.id = i.customer_id
		 WHERE`+invoiceSearchFilter+`
		 ORDER BY i.date DESC, i.id
		 LIMIT ?2 OFFSET ?3`,
		likePattern(query), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("search invoices: %w", err)
	}
	return scanInvoiceRows(rows)
}

// CountInvoices counts invoices matching query.
func (s *Store) CountInvoices(ctx context.Context, query string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM invoices i
		 JOIN customers c ON c.id = i.customer_id
		 WHERE`+invoiceSearchFilter,
		likePattern(query),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}

// Cards returns the dashboard overview counters.
func (s *Store) Cards(ctx context.Context) (invoice.Cards, error) {
	if err := s.ready(ctx); err != nil {
		return invoice.Cards{}, err
	}
	var cards invoice.Cards
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM customers),
			(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'paid'),
			(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'pending')`,
	).Scan(&cards.InvoiceCount, &cards.CustomerCount, &cards.TotalPaid, &cards.TotalPending)
	if err != nil {
		return invoice.Cards{}, fmt.Errorf("card data: %w", err)
	}
	return cards, nil
}

func scanInvoiceRows(rows *sql.Rows) ([]invoice.Row, error) {
	defer rows.Close()
	var result []invoice.Row
	for rows.Next() {
		var row invoice.Row
		var status string
		if err := rows.Scan(
			&row.ID,
			&row.CustomerID,
			&row.AmountCents,
			&status,
			&row.Date,
			&row.CustomerName,
			&row.CustomerEmail,
			&row.CustomerImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		row.Status = invoice.Status(status)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice rows: %w", err)
	}
	return result, nil
}

func likePattern(query string) string {
	return "%" + strings.TrimSpace(query) + "%"
}
