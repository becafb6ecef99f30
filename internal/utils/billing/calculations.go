package billing

import (
	"fmt"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Totals holds the computed monetary aggregates for a set of invoice items.
// Values carry full precision; callers format to 2 decimal places at output time.
type Totals struct {
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// SubtotalDisplay returns the subtotal rounded to 2 decimal places.
func (t Totals) SubtotalDisplay() string { return t.Subtotal.StringFixed(2) }

// TaxTotalDisplay returns the tax total rounded to 2 decimal places.
func (t Totals) TaxTotalDisplay() string { return t.TaxTotal.StringFixed(2) }

// GrandTotalDisplay returns the grand total rounded to 2 decimal places.
func (t Totals) GrandTotalDisplay() string { return t.GrandTotal.StringFixed(2) }

// LineTotal returns price * quantity for a single item, without tax.
func LineTotal(item domain.InvoiceItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(item.Quantity))
}

// ValidateItem checks the monetary invariants of a single invoice item.
func ValidateItem(item domain.InvoiceItem) error {
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: item price must not be negative", apperrors.ErrValidation)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
	}
	if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: item tax rate must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}

// ComputeTotals computes subtotal, tax total and grand total for the given items.
// Intermediate sums keep full decimal precision; rounding happens only when the
// totals are formatted for display. The result is independent of item order.
func ComputeTotals(items []domain.InvoiceItem) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, fmt.Errorf("%w: invoice must have at least one item", apperrors.ErrValidation)
	}

	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, item := range items {
		if err := ValidateItem(item); err != nil {
			return Totals{}, err
		}
		lineTotal := LineTotal(item)
		subtotal = subtotal.Add(lineTotal)
		taxTotal = taxTotal.Add(lineTotal.Mul(item.TaxRate).Div(oneHundred))
	}

	return Totals{
		Subtotal:   subtotal,
		TaxTotal:   taxTotal,
		GrandTotal: subtotal.Add(taxTotal),
	}, nil
}
