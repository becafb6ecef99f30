package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyCode is the fixed set of currencies an invoice may be issued in.
// The code is a label only; no conversion is ever performed.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	TND CurrencyCode = "TND"
)

// IsSupportedCurrency reports whether code is one of the fixed currency set.
func IsSupportedCurrency(code string) bool {
	switch CurrencyCode(code) {
	case USD, EUR, GBP, TND:
		return true
	}
	return false
}

// ItemKind distinguishes billable services from products.
type ItemKind string

const (
	KindService ItemKind = "service"
	KindProduct ItemKind = "product"
)

// IsValidItemKind reports whether kind (already case-folded) is a known item kind.
func IsValidItemKind(kind string) bool {
	switch ItemKind(kind) {
	case KindService, KindProduct:
		return true
	}
	return false
}

// Invoice is the header of an issued invoice. The Document field holds the
// rendered PDF and is fully replaced, never appended, on update.
type Invoice struct {
	InvoiceID    string        `json:"invoiceID"`
	DisplayID    string        `json:"displayID"` // human-facing sequential number
	UserID       string        `json:"userID"`
	ClientID     string        `json:"clientID"`
	CreationDate time.Time     `json:"creationDate"`
	DueDate      time.Time     `json:"dueDate"`
	Currency     CurrencyCode  `json:"currency"`
	FiscalStamp  bool          `json:"fiscalStamp"`
	Document     []byte        `json:"-"` // opaque rendered document blob
	Items        []InvoiceItem `json:"items,omitempty"`
	AuditFields
}

// InvoiceItem is one billable row on an invoice. Items are composed into
// their invoice and have no independent lifecycle.
type InvoiceItem struct {
	ItemID    string          `json:"itemID"`
	InvoiceID string          `json:"invoiceID"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"` // unit price, 2 decimals
	Kind      ItemKind        `json:"kind"`
	Quantity  int64           `json:"quantity"`
	TaxRate   decimal.Decimal `json:"taxRate"` // percentage, 0–100
}

// InvoiceUpdate carries the optional header fields of an invoice patch.
// Nil fields are left unchanged.
type InvoiceUpdate struct {
	CreationDate *time.Time
	DueDate      *time.Time
	Currency     *CurrencyCode
	FiscalStamp  *bool
}

// InvoiceItemUpdate patches a single existing item, addressed by its ID and
// scoped to its owning invoice so it cannot be redirected elsewhere.
type InvoiceItemUpdate struct {
	ItemID   string
	Name     *string
	Price    *decimal.Decimal
	Kind     *ItemKind
	Quantity *int64
	TaxRate  *decimal.Decimal
}
