package services

import (
	"context"

	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its items, owned by the requesting user.
	GetInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves all invoices with their items, owned by the requesting user.
	ListInvoices(ctx context.Context, userID string) ([]domain.Invoice, error)

	// GetInvoiceDocument retrieves the stored document bytes and display ID for download.
	GetInvoiceDocument(ctx context.Context, userID string, invoiceID string) ([]byte, string, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice validates the request, renders the document and commits
	// header, items and document atomically.
	CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// UpdateInvoice applies header and item patches, re-renders the document
	// and commits everything atomically.
	UpdateInvoice(ctx context.Context, userID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice and its items.
	DeleteInvoice(ctx context.Context, userID string, invoiceID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
