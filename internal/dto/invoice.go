package dto

import (
	"time"

	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest defines one line item of a new invoice.
type CreateInvoiceItemRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Price    decimal.Decimal `json:"price" binding:"required,dgte0"`
	Kind     string          `json:"type" binding:"required"`
	Quantity int64           `json:"quantity" binding:"required,gt=0"`
	TaxRate  decimal.Decimal `json:"taxRate" binding:"dgte0,dlte100"`
}

// CreateInvoiceRequest defines the data needed to create a new invoice.
type CreateInvoiceRequest struct {
	ClientID     string                     `json:"clientID" binding:"required"`
	CreationDate time.Time                  `json:"creationDate" binding:"required"`
	DueDate      time.Time                  `json:"dueDate" binding:"required"`
	Currency     string                     `json:"currency" binding:"required,oneof=USD EUR GBP TND"`
	FiscalStamp  bool                       `json:"fiscalStamp"`
	Items        []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceItemRequest defines a patch against one existing line item.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateInvoiceItemRequest struct {
	ItemID   string           `json:"itemID" binding:"required"`
	Name     *string          `json:"name" binding:"omitempty,max=255"`
	Price    *decimal.Decimal `json:"price" binding:"omitempty,dgte0"`
	Kind     *string          `json:"type"`
	Quantity *int64           `json:"quantity" binding:"omitempty,gt=0"`
	TaxRate  *decimal.Decimal `json:"taxRate" binding:"omitempty,dgte0,dlte100"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
type UpdateInvoiceRequest struct {
	CreationDate *time.Time                 `json:"creationDate"`
	DueDate      *time.Time                 `json:"dueDate"`
	Currency     *string                    `json:"currency" binding:"omitempty,oneof=USD EUR GBP TND"`
	FiscalStamp  *bool                      `json:"fiscalStamp"`
	Items        []UpdateInvoiceItemRequest `json:"items" binding:"omitempty,dive"`
}

// InvoiceItemResponse defines the data returned for a line item.
type InvoiceItemResponse struct {
	ItemID   string          `json:"itemID"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Kind     string          `json:"type"`
	Quantity int64           `json:"quantity"`
	TaxRate  decimal.Decimal `json:"taxRate"`
}

// InvoiceResponse defines the data returned for an invoice.
// The document blob is omitted; it is served by the download endpoint.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	DisplayID     string                `json:"displayID"`
	ClientID      string                `json:"clientID"`
	CreationDate  time.Time             `json:"creationDate"`
	DueDate       time.Time             `json:"dueDate"`
	Currency      string                `json:"currency"`
	FiscalStamp   bool                  `json:"fiscalStamp"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to InvoiceItemResponse DTO
func ToInvoiceItemResponse(item *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:   item.ItemID,
		Name:     item.Name,
		Price:    item.Price,
		Kind:     string(item.Kind),
		Quantity: item.Quantity,
		TaxRate:  item.TaxRate,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = ToInvoiceItemResponse(&item)
	}
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		DisplayID:     inv.DisplayID,
		ClientID:      inv.ClientID,
		CreationDate:  inv.CreationDate,
		DueDate:       inv.DueDate,
		Currency:      string(inv.Currency),
		FiscalStamp:   inv.FiscalStamp,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}

// ToListInvoiceResponse converts a slice of domain.Invoice to a slice of InvoiceResponse DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return res
}
