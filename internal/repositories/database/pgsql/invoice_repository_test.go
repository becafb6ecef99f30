package pgsql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	"github.com/invmate/invmate_app/internal/repositories/database/pgsql"
	"github.com/invmate/invmate_app/pkg/database"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real PostgreSQL instance because the rollback
// behaviour under test lives in the transaction code itself and cannot be
// observed through mocks. Set TEST_PGSQL_URL to enable them.
func setupInvoiceRepoTest(t *testing.T) (*pgxpool.Pool, portsrepo.RepositoryProvider, string, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}
	url := os.Getenv("TEST_PGSQL_URL")
	if url == "" {
		t.Skip("TEST_PGSQL_URL not set; skipping database integration test")
	}

	ctx := context.Background()
	applyMigrations(t, url)

	pool, err := database.NewPgxPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	userID := uuid.NewString()
	clientID := uuid.NewString()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (user_id, username, created_by, last_updated_by)
		VALUES ($1, $2, $1, $1);
	`, userID, "itest-"+userID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO clients (client_id, user_id, company_name, address, created_by, last_updated_by)
		VALUES ($1, $2, 'Globex Corp', '42 Harbor Road', $2, $2);
	`, clientID, userID)
	require.NoError(t, err)
	t.Cleanup(func() {
		// Cascades over profiles, clients, invoices and items.
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE user_id = $1;`, userID)
	})

	return pool, pgsql.NewRepositoryProvider(pool), userID, clientID
}

func applyMigrations(t *testing.T, url string) {
	t.Helper()
	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to migrate test database: %v", err)
	}
}

func testInvoice(userID, clientID string) (domain.Invoice, []domain.InvoiceItem) {
	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:    uuid.NewString(),
		UserID:       userID,
		ClientID:     clientID,
		CreationDate: now,
		DueDate:      now.AddDate(0, 1, 0),
		Currency:     domain.TND,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	items := []domain.InvoiceItem{
		{ItemID: uuid.NewString(), Name: "Consulting", Price: decimal.RequireFromString("100.00"), Kind: domain.KindService, Quantity: 2, TaxRate: decimal.RequireFromString("19")},
		{ItemID: uuid.NewString(), Name: "Router", Price: decimal.RequireFromString("250.00"), Kind: domain.KindProduct, Quantity: 1, TaxRate: decimal.RequireFromString("7")},
	}
	return invoice, items
}

func countRows(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

func TestCreateInvoiceCommitsHeaderItemsAndDocument(t *testing.T) {
	pool, repos, userID, clientID := setupInvoiceRepoTest(t)
	ctx := context.Background()
	invoice, items := testInvoice(userID, clientID)

	created, err := repos.InvoiceRepo.CreateInvoice(ctx, invoice, items, func(displayID string) ([]byte, error) {
		return []byte("%PDF " + displayID), nil
	})
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{6}$`, created.DisplayID)

	assert.Equal(t, 1, countRows(t, pool, `SELECT count(*) FROM invoices WHERE invoice_id = $1 AND document IS NOT NULL;`, invoice.InvoiceID))
	assert.Equal(t, 2, countRows(t, pool, `SELECT count(*) FROM invoice_items WHERE invoice_id = $1;`, invoice.InvoiceID))
}

func TestCreateInvoiceRenderFailureLeavesNoRows(t *testing.T) {
	pool, repos, userID, clientID := setupInvoiceRepoTest(t)
	ctx := context.Background()
	invoice, items := testInvoice(userID, clientID)

	renderErr := fmt.Errorf("%w: cannot render invoice without an issuer company name", apperrors.ErrValidation)
	_, err := repos.InvoiceRepo.CreateInvoice(ctx, invoice, items, func(string) ([]byte, error) {
		return nil, renderErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// The render callback runs after the header and item inserts; a failure
	// must leave neither behind.
	assert.Equal(t, 0, countRows(t, pool, `SELECT count(*) FROM invoices WHERE invoice_id = $1;`, invoice.InvoiceID))
	assert.Equal(t, 0, countRows(t, pool, `SELECT count(*) FROM invoice_items WHERE invoice_id = $1;`, invoice.InvoiceID))
	assert.Equal(t, 0, countRows(t, pool, `SELECT count(*) FROM invoices WHERE user_id = $1;`, userID))
}

func TestUpdateInvoiceRenderFailureKeepsCommittedState(t *testing.T) {
	pool, repos, userID, clientID := setupInvoiceRepoTest(t)
	ctx := context.Background()
	invoice, items := testInvoice(userID, clientID)

	original := []byte("%PDF original")
	_, err := repos.InvoiceRepo.CreateInvoice(ctx, invoice, items, func(string) ([]byte, error) {
		return original, nil
	})
	require.NoError(t, err)

	eur := domain.EUR
	newName := "Firewall"
	_, err = repos.InvoiceRepo.UpdateInvoice(ctx, userID, invoice.InvoiceID,
		domain.InvoiceUpdate{Currency: &eur},
		[]domain.InvoiceItemUpdate{{ItemID: items[1].ItemID, Name: &newName}},
		userID,
		func(domain.Invoice, []domain.InvoiceItem) ([]byte, error) {
			return nil, fmt.Errorf("%w: render failed", apperrors.ErrValidation)
		})
	require.Error(t, err)

	var currency string
	var document []byte
	require.NoError(t, pool.QueryRow(ctx, `SELECT currency, document FROM invoices WHERE invoice_id = $1;`, invoice.InvoiceID).Scan(&currency, &document))
	assert.Equal(t, string(domain.TND), currency)
	assert.Equal(t, original, document)

	var name string
	require.NoError(t, pool.QueryRow(ctx, `SELECT name FROM invoice_items WHERE item_id = $1;`, items[1].ItemID).Scan(&name))
	assert.Equal(t, "Router", name)
}
