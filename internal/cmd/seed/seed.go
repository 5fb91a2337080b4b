package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/louisbranch/invoicing/internal/platform/cmd"
	authsqlite "github.com/louisbranch/invoicing/internal/services/auth/storage/sqlite"
	"github.com/louisbranch/invoicing/internal/services/auth/user"
	"github.com/louisbranch/invoicing/internal/services/invoices/invoice"
	invoicesstorage "github.com/louisbranch/invoicing/internal/services/invoices/storage"
	invoicessqlite "github.com/louisbranch/invoicing/internal/services/invoices/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath     string `env:"INVOICING_DB_PATH" envDefault:"data/invoicing.db"`
	AuthDBPath string `env:"INVOICING_AUTH_DB_PATH" envDefault:"data/auth.db"`
	UserName   string `env:"INVOICING_SEED_USER_NAME" envDefault:"User"`
	UserEmail  string `env:"INVOICING_SEED_USER_EMAIL" envDefault:"user@nextmail.com"`
	Password   string `env:"INVOICING_SEED_PASSWORD" envDefault:"123456"`
	// BcryptCost zero uses the bcrypt default.
	BcryptCost int
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Invoices SQLite database path")
	fs.StringVar(&cfg.AuthDBPath, "auth-db-path", cfg.AuthDBPath, "Users SQLite database path")
	fs.StringVar(&cfg.UserEmail, "email", cfg.UserEmail, "Email of the seeded user")
	fs.StringVar(&cfg.Password, "password", cfg.Password, "Password of the seeded user")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UserWriter stores seeded users.
type UserWriter interface {
	PutUser(ctx context.Context, u user.User) error
}

// DataWriter stores seeded customers, invoices, and revenue.
type DataWriter interface {
	PutCustomer(ctx context.Context, customer invoice.Customer) error
	PutRevenue(ctx context.Context, revenue invoice.Revenue) error
	GetInvoice(ctx context.Context, invoiceID string) (invoice.Invoice, error)
	InsertInvoice(ctx context.Context, inv invoice.Invoice) error
}

// Result counts the records a seed run wrote.
type Result struct {
	Customers int
	Invoices  int
	Revenue   int
}

// Run opens both stores and seeds them with the demo dataset.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if strings.TrimSpace(cfg.DBPath) == "" || strings.TrimSpace(cfg.AuthDBPath) == "" {
		return errors.New("db path and auth db path are required")
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		invoiceStore, err := invoicessqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open invoices store: %w", err)
		}
		defer invoiceStore.Close()

		authStore, err := authsqlite.Open(cfg.AuthDBPath)
		if err != nil {
			return fmt.Errorf("open auth store: %w", err)
		}
		defer authStore.Close()

		if err := SeedUser(ctx, authStore, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Seeded user %s\n", strings.ToLower(strings.TrimSpace(cfg.UserEmail)))

		result, err := SeedData(ctx, invoiceStore)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Seeded %d customers, %d invoices, %d revenue months\n", result.Customers, result.Invoices, result.Revenue)
		return nil
	})
}

// SeedUser creates or refreshes the demo login.
func SeedUser(ctx context.Context, users UserWriter, cfg Config) error {
	u, err := user.CreateUser(user.CreateUserInput{
		Name:     cfg.UserName,
		Email:    cfg.UserEmail,
		Password: cfg.Password,
	}, cfg.BcryptCost, nil, nil)
	if err != nil {
		return fmt.Errorf("create seed user: %w", err)
	}
	if err := users.PutUser(ctx, u); err != nil {
		return fmt.Errorf("store seed user: %w", err)
	}
	return nil
}

// SeedData writes the demo customers, revenue, and invoices. Invoices that
// already exist are left untouched so reruns do not duplicate or reset them.
func SeedData(ctx context.Context, store DataWriter) (Result, error) {
	var result Result
	for _, customer := range demoCustomers {
		if err := store.PutCustomer(ctx, customer); err != nil {
			return result, fmt.Errorf("seed customer %s: %w", customer.Name, err)
		}
		result.Customers++
	}
	for _, revenue := range demoRevenue {
		if err := store.PutRevenue(ctx, revenue); err != nil {
			return result, fmt.Errorf("seed revenue %s: %w", revenue.Month, err)
		}
		result.Revenue++
	}
	for _, inv := range demoInvoices {
		_, err := store.GetInvoice(ctx, inv.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, invoicesstorage.ErrNotFound) {
			return result, fmt.Errorf("check invoice %s: %w", inv.ID, err)
		}
		if err := store.InsertInvoice(ctx, inv); err != nil {
			return result, fmt.Errorf("seed invoice %s: %w", inv.ID, err)
		}
		result.Invoices++
	}
	return result, nil
}
