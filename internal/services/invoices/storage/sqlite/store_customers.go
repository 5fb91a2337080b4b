package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
)

// PutCustomer inserts or replaces a customer.
func (s *Store) PutCustomer(ctx context.Context, customer invoice.Customer) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(customer.ID) == "" {
		return fmt.Errorf("customer id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			image_url = excluded.image_url`,
		customer.ID, customer.Name, customer.Email, customer.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("put customer: %w", err)
	}
	return nil
}

// ListCustomers returns every customer ordered by name.
func (s *Store) ListCustomers(ctx context.Context) ([]invoice.Customer, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, email, image_url FROM customers ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []invoice.Customer
	for rows.Next() {
		var c invoice.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

// SearchCustomers returns customers whose name or email contains query, with
// invoice totals.
func (s *Store) SearchCustomers(ctx context.Context, query string) ([]invoice.CustomerSummary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT
			c.id,
			c.name,
			c.email,
			c.image_url,
			COUNT(i.id),
			COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.amount ELSE 0 END), 0)
		 FROM customers c
		 LEFT JOIN invoices i ON i.customer_id = c.id
		 WHERE c.name LIKE ?1 OR c.email LIKE ?1
		 GROUP BY c.id, c.name, c.email, c.image_url
		 ORDER BY c.name ASC`,
		likePattern(query),
	)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	var summaries []invoice.CustomerSummary
	for rows.Next() {
		var summary invoice.CustomerSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Email,
			&summary.ImageURL,
			&summary.TotalInvoices,
			&summary.TotalPending,
			&summary.TotalPaid,
		); err != nil {
			return nil, fmt.Errorf("scan customer summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer summaries: %w", err)
	}
	return summaries, nil
}

// PutRevenue inserts or replaces the revenue for a month.
func (s *Store) PutRevenue(ctx context.Context, revenue invoice.Revenue) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(revenue.Month) == "" {
		return fmt.Errorf("revenue month is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO revenue (month, revenue) VALUES (?, ?)
		 ON CONFLICT(month) DO UPDATE SET revenue = excluded.revenue`,
		revenue.Month, revenue.Revenue,
	)
	if err != nil {
		return fmt.Errorf("put revenue: %w", err)
	}
	return nil
}

// ListRevenue returns monthly revenue in insertion order.
func (s *Store) ListRevenue(ctx context.Context) ([]invoice.Revenue, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT month, revenue FROM revenue ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}
	defer rows.Close()

	var result []invoice.Revenue
	for rows.Next() {
		var r invoice.Revenue
		if err := rows.Scan(&r.Month, &r.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revenue: %w", err)
	}
	return result, nil
}
