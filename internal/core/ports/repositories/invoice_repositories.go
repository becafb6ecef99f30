package repositories

import (
	"context"

	"github.com/invmate/invmate_app/internal/core/domain"
)

// RenderFunc produces the invoice document bytes for the given display ID.
// It runs inside the repository transaction so that a rendering failure
// rolls back the header and item writes along with it.
type RenderFunc func(displayID string) ([]byte, error)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its items, scoped to the owning user.
	// Items are returned in their original insertion order.
	FindInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByUser retrieves all invoices owned by the given user, items included, without documents.
	ListInvoicesByUser(ctx context.Context, userID string) ([]domain.Invoice, error)

	// GetInvoiceDocument retrieves the stored document bytes and display ID for an invoice.
	GetInvoiceDocument(ctx context.Context, userID string, invoiceID string) ([]byte, string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// CreateInvoice persists the invoice header, its items and the rendered document
	// in a single transaction. The display ID is allocated inside the transaction and
	// passed to render; any failure rolls back every write.
	CreateInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem, render RenderFunc) (*domain.Invoice, error)

	// UpdateInvoice applies header and item patches to an invoice owned by the user,
	// re-renders the document from the merged state, and commits everything together.
	// The header row is locked for the duration of the transaction.
	UpdateInvoice(ctx context.Context, userID string, invoiceID string, update domain.InvoiceUpdate, itemUpdates []domain.InvoiceItemUpdate, updatedBy string, render func(invoice domain.Invoice, items []domain.InvoiceItem) ([]byte, error)) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice and its items (cascade).
	DeleteInvoice(ctx context.Context, userID string, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
// This is a facade for clients that need access to all operations
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
