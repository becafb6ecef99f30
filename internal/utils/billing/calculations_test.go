package billing_test

import (
	"testing"

	"github.com/invmate/invmate_app/internal/apperrors"
	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/utils/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(price string, quantity int64, taxRate string) domain.InvoiceItem {
	return domain.InvoiceItem{
		Name:     "test item",
		Price:    decimal.RequireFromString(price),
		Kind:     domain.KindService,
		Quantity: quantity,
		TaxRate:  decimal.RequireFromString(taxRate),
	}
}

func TestComputeTotals(t *testing.T) {
	items := []domain.InvoiceItem{
		item("10.00", 2, "10"),
		item("5.00", 1, "0"),
	}

	totals, err := billing.ComputeTotals(items)
	require.NoError(t, err)

	assert.Equal(t, "25.00", totals.SubtotalDisplay())
	assert.Equal(t, "2.00", totals.TaxTotalDisplay())
	assert.Equal(t, "27.00", totals.GrandTotalDisplay())
	assert.True(t, totals.GrandTotal.Equal(totals.Subtotal.Add(totals.TaxTotal)))
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	a := []domain.InvoiceItem{
		item("19.99", 3, "7.5"),
		item("0.01", 100, "100"),
		item("42.00", 1, "0"),
	}
	b := []domain.InvoiceItem{a[2], a[0], a[1]}

	totalsA, err := billing.ComputeTotals(a)
	require.NoError(t, err)
	totalsB, err := billing.ComputeTotals(b)
	require.NoError(t, err)

	assert.True(t, totalsA.Subtotal.Equal(totalsB.Subtotal))
	assert.True(t, totalsA.TaxTotal.Equal(totalsB.TaxTotal))
	assert.True(t, totalsA.GrandTotal.Equal(totalsB.GrandTotal))
}

func TestComputeTotalsTaxBounds(t *testing.T) {
	zeroTax, err := billing.ComputeTotals([]domain.InvoiceItem{item("12.34", 2, "0")})
	require.NoError(t, err)
	assert.True(t, zeroTax.TaxTotal.IsZero())
	assert.True(t, zeroTax.GrandTotal.Equal(zeroTax.Subtotal))

	fullTax, err := billing.ComputeTotals([]domain.InvoiceItem{item("12.34", 2, "100")})
	require.NoError(t, err)
	assert.True(t, fullTax.TaxTotal.Equal(fullTax.Subtotal))
}

func TestComputeTotalsNoCompoundingRounding(t *testing.T) {
	// Each line's tax is 0.0333...; summing full-precision values and rounding
	// once must not drift from the exact result.
	items := make([]domain.InvoiceItem, 0, 3)
	for i := 0; i < 3; i++ {
		items = append(items, item("0.37", 1, "9"))
	}

	totals, err := billing.ComputeTotals(items)
	require.NoError(t, err)

	assert.Equal(t, "1.11", totals.SubtotalDisplay())
	assert.Equal(t, "0.10", totals.TaxTotalDisplay())
}

func TestComputeTotalsValidation(t *testing.T) {
	testCases := []struct {
		name  string
		items []domain.InvoiceItem
	}{
		{name: "empty item list", items: []domain.InvoiceItem{}},
		{name: "negative price", items: []domain.InvoiceItem{item("-1.00", 1, "0")}},
		{name: "zero quantity", items: []domain.InvoiceItem{item("1.00", 0, "0")}},
		{name: "negative quantity", items: []domain.InvoiceItem{item("1.00", -2, "0")}},
		{name: "negative tax rate", items: []domain.InvoiceItem{item("1.00", 1, "-1")}},
		{name: "tax rate above 100", items: []domain.InvoiceItem{item("1.00", 1, "100.01")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := billing.ComputeTotals(tc.items)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "59.97", billing.LineTotal(item("19.99", 3, "7.5")).StringFixed(2))
}
