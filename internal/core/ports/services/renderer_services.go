package services

import (
	"time"

	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/utils/billing"
)

// RenderInput carries everything the renderer needs to produce an invoice document.
// All monetary values are pre-computed; the renderer does no arithmetic beyond
// per-line display totals.
type RenderInput struct {
	Issuer       domain.Profile
	Client       domain.Client
	DisplayID    string
	CreationDate time.Time
	DueDate      time.Time
	Currency     domain.CurrencyCode
	FiscalStamp  bool
	Items        []domain.InvoiceItem
	Totals       billing.Totals
}

// InvoiceRenderer produces the stored invoice document from its inputs.
type InvoiceRenderer interface {
	// Render returns the document bytes, or an error if the input cannot be rendered.
	Render(input RenderInput) ([]byte, error)
}
