package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice mirrors the invoices table row. Document is the rendered PDF blob.
type Invoice struct {
	InvoiceID    string    `json:"invoiceID"`
	DisplayID    string    `json:"displayID"`
	UserID       string    `json:"userID"`
	ClientID     string    `json:"clientID"`
	CreationDate time.Time `json:"creationDate"`
	DueDate      time.Time `json:"dueDate"`
	Currency     string    `json:"currency"`
	FiscalStamp  bool      `json:"fiscalStamp"`
	Document     []byte    `json:"-"`
	AuditFields
}

// InvoiceItem mirrors the invoice_items table row. LineNo preserves the
// order items were submitted in.
type InvoiceItem struct {
	ItemID    string          `json:"itemID"`
	InvoiceID string          `json:"invoiceID"`
	LineNo    int             `json:"lineNo"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Kind      string          `json:"kind"`
	Quantity  int64           `json:"quantity"`
	TaxRate   decimal.Decimal `json:"taxRate"`
}
