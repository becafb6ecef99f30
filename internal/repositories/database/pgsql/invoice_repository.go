package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	"github.com/invmate/invmate_app/internal/models"
	"github.com/invmate/invmate_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice and item data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceHeaderColumns = `invoice_id, display_id, user_id, client_id, creation_date, due_date, currency, fiscal_stamp, created_at, created_by, last_updated_at, last_updated_by`

const invoiceItemColumns = `item_id, invoice_id, line_no, name, price, kind, quantity, tax_rate`

// prefixedInvoiceItemColumns qualifies the item column list with a table alias.
func prefixedInvoiceItemColumns(alias string) string {
	return alias + ".item_id, " + alias + ".invoice_id, " + alias + ".line_no, " +
		alias + ".name, " + alias + ".price, " + alias + ".kind, " +
		alias + ".quantity, " + alias + ".tax_rate"
}

func scanInvoiceHeaderRow(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.DisplayID,
		&m.UserID,
		&m.ClientID,
		&m.CreationDate,
		&m.DueDate,
		&m.Currency,
		&m.FiscalStamp,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanInvoiceItemRow(row pgx.Row) (*models.InvoiceItem, error) {
	var m models.InvoiceItem
	err := row.Scan(
		&m.ItemID,
		&m.InvoiceID,
		&m.LineNo,
		&m.Name,
		&m.Price,
		&m.Kind,
		&m.Quantity,
		&m.TaxRate,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateInvoice persists the header, its items and the rendered document in a
// single transaction. The sequential display ID is allocated inside the
// transaction and handed to the render callback; if rendering fails nothing
// is committed and the sequence gap is the only trace.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem, render portsrepo.RenderFunc) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('invoice_display_seq');`).Scan(&seq); err != nil {
		return nil, fmt.Errorf("failed to allocate invoice display number: %w", err)
	}
	invoice.DisplayID = fmt.Sprintf("INV-%06d", seq)

	modelInvoice := mapping.ToModelInvoice(invoice)
	headerQuery := `
		INSERT INTO invoices (` + invoiceHeaderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelInvoice.InvoiceID,
		modelInvoice.DisplayID,
		modelInvoice.UserID,
		modelInvoice.ClientID,
		modelInvoice.CreationDate,
		modelInvoice.DueDate,
		modelInvoice.Currency,
		modelInvoice.FiscalStamp,
		modelInvoice.CreatedAt,
		modelInvoice.CreatedBy,
		modelInvoice.LastUpdatedAt,
		modelInvoice.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("referenced client not found: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to insert invoice %s: %w", modelInvoice.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for i, item := range items {
		modelItem := mapping.ToModelInvoiceItem(item)
		modelItem.InvoiceID = modelInvoice.InvoiceID
		modelItem.LineNo = i + 1
		batch.Queue(itemQuery,
			modelItem.ItemID,
			modelItem.InvoiceID,
			modelItem.LineNo,
			modelItem.Name,
			modelItem.Price,
			modelItem.Kind,
			modelItem.Quantity,
			modelItem.TaxRate,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert items for invoice %s: %w", modelInvoice.InvoiceID, err)
	}

	document, err := render(invoice.DisplayID)
	if err != nil {
		return nil, fmt.Errorf("failed to render document for invoice %s: %w", modelInvoice.InvoiceID, err)
	}
	if _, err := tx.Exec(ctx, `UPDATE invoices SET document = $1 WHERE invoice_id = $2;`, document, modelInvoice.InvoiceID); err != nil {
		return nil, fmt.Errorf("failed to store document for invoice %s: %w", modelInvoice.InvoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	created := invoice
	created.Document = document
	created.Items = items
	for i := range created.Items {
		created.Items[i].InvoiceID = invoice.InvoiceID
	}
	return &created, nil
}

// UpdateInvoice applies header and item patches under a row lock on the
// header, re-renders the document from the merged state and commits it all
// together. Item patches are scoped to the invoice so an item ID belonging
// to another invoice patches nothing and fails the whole update.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, userID string, invoiceID string, update domain.InvoiceUpdate, itemUpdates []domain.InvoiceItemUpdate, updatedBy string, render func(invoice domain.Invoice, items []domain.InvoiceItem) ([]byte, error)) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the header row for the duration of the transaction. Concurrent
	// updates to the same invoice serialize here.
	lockQuery := `SELECT ` + invoiceHeaderColumns + ` FROM invoices WHERE invoice_id = $1 AND user_id = $2 FOR UPDATE;`
	if _, err := scanInvoiceHeaderRow(tx.QueryRow(ctx, lockQuery, invoiceID, userID)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}

	headerQuery := `
		UPDATE invoices
		SET creation_date = COALESCE($1, creation_date),
		    due_date = COALESCE($2, due_date),
		    currency = COALESCE($3, currency),
		    fiscal_stamp = COALESCE($4, fiscal_stamp),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE invoice_id = $7 AND user_id = $8;
	`
	var currency *string
	if update.Currency != nil {
		s := string(*update.Currency)
		currency = &s
	}
	if _, err := tx.Exec(ctx, headerQuery,
		update.CreationDate,
		update.DueDate,
		currency,
		update.FiscalStamp,
		time.Now(),
		updatedBy,
		invoiceID,
		userID,
	); err != nil {
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}

	itemQuery := `
		UPDATE invoice_items
		SET name = COALESCE($1, name),
		    price = COALESCE($2, price),
		    kind = COALESCE($3, kind),
		    quantity = COALESCE($4, quantity),
		    tax_rate = COALESCE($5, tax_rate)
		WHERE item_id = $6 AND invoice_id = $7;
	`
	for _, patch := range itemUpdates {
		var kind *string
		if patch.Kind != nil {
			s := string(*patch.Kind)
			kind = &s
		}
		cmdTag, err := tx.Exec(ctx, itemQuery,
			patch.Name,
			patch.Price,
			kind,
			patch.Quantity,
			patch.TaxRate,
			patch.ItemID,
			invoiceID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update item %s: %w", patch.ItemID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return nil, fmt.Errorf("item %s not found on invoice %s: %w", patch.ItemID, invoiceID, apperrors.ErrNotFound)
		}
	}

	merged, err := r.findInvoiceInTx(ctx, tx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	document, err := render(*merged, merged.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to render document for invoice %s: %w", invoiceID, err)
	}
	if _, err := tx.Exec(ctx, `UPDATE invoices SET document = $1 WHERE invoice_id = $2;`, document, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to store document for invoice %s: %w", invoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	merged.Document = document
	return merged, nil
}

// findInvoiceInTx re-reads the merged header and items inside the update
// transaction so the rendered document reflects exactly what is committed.
func (r *PgxInvoiceRepository) findInvoiceInTx(ctx context.Context, tx pgx.Tx, userID string, invoiceID string) (*domain.Invoice, error) {
	headerQuery := `SELECT ` + invoiceHeaderColumns + ` FROM invoices WHERE invoice_id = $1 AND user_id = $2;`
	modelInvoice, err := scanInvoiceHeaderRow(tx.QueryRow(ctx, headerQuery, invoiceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to reload invoice %s: %w", invoiceID, err)
	}

	itemsQuery := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY line_no;`
	rows, err := tx.Query(ctx, itemsQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	modelItems := []models.InvoiceItem{}
	for rows.Next() {
		modelItem, err := scanInvoiceItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		modelItems = append(modelItems, *modelItem)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", rows.Err())
	}

	invoice := mapping.ToDomainInvoice(*modelInvoice)
	invoice.Items = mapping.ToDomainInvoiceItemSlice(modelItems)
	return &invoice, nil
}

// FindInvoiceByID retrieves an invoice with its items in insertion order,
// scoped to the owning user. The document blob is not loaded.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	headerQuery := `SELECT ` + invoiceHeaderColumns + ` FROM invoices WHERE invoice_id = $1 AND user_id = $2;`
	modelInvoice, err := scanInvoiceHeaderRow(r.Pool.QueryRow(ctx, headerQuery, invoiceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	itemsQuery := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY line_no;`
	rows, err := r.Pool.Query(ctx, itemsQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	modelItems := []models.InvoiceItem{}
	for rows.Next() {
		modelItem, err := scanInvoiceItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		modelItems = append(modelItems, *modelItem)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", rows.Err())
	}

	invoice := mapping.ToDomainInvoice(*modelInvoice)
	invoice.Items = mapping.ToDomainInvoiceItemSlice(modelItems)
	return &invoice, nil
}

// ListInvoicesByUser retrieves every invoice owned by the user, items
// included, without the document blobs.
func (r *PgxInvoiceRepository) ListInvoicesByUser(ctx context.Context, userID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceHeaderColumns + ` FROM invoices WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		modelInvoice, err := scanInvoiceHeaderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(*modelInvoice))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}

	// One pass over all of the user's items, grouped back onto their invoices.
	itemsQuery := `
		SELECT ` + prefixedInvoiceItemColumns("it") + `
		FROM invoice_items it
		JOIN invoices inv ON inv.invoice_id = it.invoice_id
		WHERE inv.user_id = $1
		ORDER BY it.invoice_id, it.line_no;
	`
	itemRows, err := r.Pool.Query(ctx, itemsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer itemRows.Close()

	itemsByInvoice := map[string][]models.InvoiceItem{}
	for itemRows.Next() {
		modelItem, err := scanInvoiceItemRow(itemRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		itemsByInvoice[modelItem.InvoiceID] = append(itemsByInvoice[modelItem.InvoiceID], *modelItem)
	}
	if itemRows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", itemRows.Err())
	}

	for i := range invoices {
		invoices[i].Items = mapping.ToDomainInvoiceItemSlice(itemsByInvoice[invoices[i].InvoiceID])
	}

	return invoices, nil
}

func (r *PgxInvoiceRepository) GetInvoiceDocument(ctx context.Context, userID string, invoiceID string) ([]byte, string, error) {
	query := `SELECT document, display_id FROM invoices WHERE invoice_id = $1 AND user_id = $2;`
	var document []byte
	var displayID string
	err := r.Pool.QueryRow(ctx, query, invoiceID, userID).Scan(&document, &displayID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to load document for invoice %s: %w", invoiceID, err)
	}
	if len(document) == 0 {
		return nil, "", apperrors.ErrNotFound
	}
	return document, displayID, nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, userID string, invoiceID string) error {
	// Items go with the header via ON DELETE CASCADE.
	query := `DELETE FROM invoices WHERE invoice_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
