package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	portsrepo "github.com/invmate/invmate_app/internal/core/ports/repositories"
	portssvc "github.com/invmate/invmate_app/internal/core/ports/services"
	"github.com/invmate/invmate_app/internal/dto"
	"github.com/invmate/invmate_app/internal/middleware"
	"github.com/invmate/invmate_app/internal/utils/billing"
)

// invoiceService orchestrates invoice creation and update: tenant checks,
// item validation, totals, rendering and the atomic repository transaction.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
	renderer    portssvc.InvoiceRenderer
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, profileRepo portsrepo.ProfileRepositoryFacade, renderer portssvc.InvoiceRenderer) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		profileRepo: profileRepo,
		renderer:    renderer,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// normalizeItemKind case-folds and validates an item kind.
func normalizeItemKind(kind string) (domain.ItemKind, error) {
	folded := strings.ToLower(kind)
	if !domain.IsValidItemKind(folded) {
		return "", fmt.Errorf("%w: item type must be service or product", apperrors.ErrValidation)
	}
	return domain.ItemKind(folded), nil
}

// CreateInvoice validates the request, confirms the user owns the referenced
// client and has a profile, then commits header, items and the rendered
// document in one repository transaction. All validation happens before any
// write; a rendering failure persists nothing.
func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsSupportedCurrency(req.Currency) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.Currency)
	}

	items := make([]domain.InvoiceItem, len(req.Items))
	for i, itemReq := range req.Items {
		kind, err := normalizeItemKind(itemReq.Kind)
		if err != nil {
			return nil, err
		}
		items[i] = domain.InvoiceItem{
			ItemID:   uuid.NewString(),
			Name:     itemReq.Name,
			Price:    itemReq.Price,
			Kind:     kind,
			Quantity: itemReq.Quantity,
			TaxRate:  itemReq.TaxRate,
		}
	}

	totals, err := billing.ComputeTotals(items)
	if err != nil {
		return nil, err
	}

	// Tenant guard: both lookups are scoped to the requesting user. A client
	// owned by someone else is indistinguishable from a missing one.
	client, err := s.clientRepo.FindClientByID(ctx, userID, req.ClientID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:    uuid.NewString(),
		UserID:       userID,
		ClientID:     client.ClientID,
		CreationDate: req.CreationDate,
		DueDate:      req.DueDate,
		Currency:     domain.CurrencyCode(req.Currency),
		FiscalStamp:  req.FiscalStamp,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	render := func(displayID string) ([]byte, error) {
		return s.renderer.Render(portssvc.RenderInput{
			Issuer:       *profile,
			Client:       *client,
			DisplayID:    displayID,
			CreationDate: invoice.CreationDate,
			DueDate:      invoice.DueDate,
			Currency:     invoice.Currency,
			FiscalStamp:  invoice.FiscalStamp,
			Items:        items,
			Totals:       totals,
		})
	}

	created, err := s.invoiceRepo.CreateInvoice(ctx, invoice, items, render)
	if err != nil {
		logger.Error("Failed to create invoice", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice created", slog.String("invoice_id", created.InvoiceID), slog.String("display_id", created.DisplayID))
	return created, nil
}

// UpdateInvoice applies header and item patches to an invoice owned by the
// user, re-renders the document from the merged state and commits everything
// atomically. The stored document is fully replaced.
func (s *invoiceService) UpdateInvoice(ctx context.Context, userID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Currency != nil && !domain.IsSupportedCurrency(*req.Currency) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, *req.Currency)
	}

	itemUpdates := make([]domain.InvoiceItemUpdate, len(req.Items))
	for i, patch := range req.Items {
		update := domain.InvoiceItemUpdate{
			ItemID:   patch.ItemID,
			Name:     patch.Name,
			Price:    patch.Price,
			Quantity: patch.Quantity,
			TaxRate:  patch.TaxRate,
		}
		if patch.Kind != nil {
			kind, err := normalizeItemKind(*patch.Kind)
			if err != nil {
				return nil, err
			}
			update.Kind = &kind
		}
		if patch.Price != nil && patch.Price.IsNegative() {
			return nil, fmt.Errorf("%w: item price must not be negative", apperrors.ErrValidation)
		}
		if patch.Quantity != nil && *patch.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
		}
		if patch.TaxRate != nil && (patch.TaxRate.IsNegative() || patch.TaxRate.GreaterThan(oneHundredPercent)) {
			return nil, fmt.Errorf("%w: item tax rate must be between 0 and 100", apperrors.ErrValidation)
		}
		itemUpdates[i] = update
	}

	// Ownership check doubles as the client reference lookup for rendering.
	existing, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindClientByID(ctx, userID, existing.ClientID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := domain.InvoiceUpdate{
		CreationDate: req.CreationDate,
		DueDate:      req.DueDate,
		FiscalStamp:  req.FiscalStamp,
	}
	if req.Currency != nil {
		currency := domain.CurrencyCode(*req.Currency)
		update.Currency = &currency
	}

	// render runs inside the repository transaction against the merged state,
	// so the committed document always matches the committed rows.
	render := func(merged domain.Invoice, items []domain.InvoiceItem) ([]byte, error) {
		totals, err := billing.ComputeTotals(items)
		if err != nil {
			return nil, err
		}
		return s.renderer.Render(portssvc.RenderInput{
			Issuer:       *profile,
			Client:       *client,
			DisplayID:    merged.DisplayID,
			CreationDate: merged.CreationDate,
			DueDate:      merged.DueDate,
			Currency:     merged.Currency,
			FiscalStamp:  merged.FiscalStamp,
			Items:        items,
			Totals:       totals,
		})
	}

	updated, err := s.invoiceRepo.UpdateInvoice(ctx, userID, invoiceID, update, itemUpdates, userID, render)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Invoice updated", slog.String("invoice_id", invoiceID))
	return updated, nil
}

// GetInvoiceByID retrieves an invoice with its items, owned by the requesting user.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
}

// ListInvoices retrieves all invoices with their items, owned by the requesting user.
func (s *invoiceService) ListInvoices(ctx context.Context, userID string) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoicesByUser(ctx, userID)
}

// GetInvoiceDocument retrieves the stored document bytes and display ID for download.
func (s *invoiceService) GetInvoiceDocument(ctx context.Context, userID string, invoiceID string) ([]byte, string, error) {
	return s.invoiceRepo.GetInvoiceDocument(ctx, userID, invoiceID)
}

// DeleteInvoice removes an invoice and its items.
func (s *invoiceService) DeleteInvoice(ctx context.Context, userID string, invoiceID string) error {
	return s.invoiceRepo.DeleteInvoice(ctx, userID, invoiceID)
}
