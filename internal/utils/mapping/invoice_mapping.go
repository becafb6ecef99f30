package mapping

import (
	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice (header only).
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:    d.InvoiceID,
		DisplayID:    d.DisplayID,
		UserID:       d.UserID,
		ClientID:     d.ClientID,
		CreationDate: d.CreationDate,
		DueDate:      d.DueDate,
		Currency:     string(d.Currency),
		FiscalStamp:  d.FiscalStamp,
		Document:     d.Document,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice (header only).
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:    m.InvoiceID,
		DisplayID:    m.DisplayID,
		UserID:       m.UserID,
		ClientID:     m.ClientID,
		CreationDate: m.CreationDate,
		DueDate:      m.DueDate,
		Currency:     domain.CurrencyCode(m.Currency),
		FiscalStamp:  m.FiscalStamp,
		Document:     m.Document,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceItem converts a domain InvoiceItem to a model InvoiceItem.
// LineNo is assigned by the repository at insert time.
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:    d.ItemID,
		InvoiceID: d.InvoiceID,
		Name:      d.Name,
		Price:     d.Price,
		Kind:      string(d.Kind),
		Quantity:  d.Quantity,
		TaxRate:   d.TaxRate,
	}
}

// ToDomainInvoiceItem converts a model InvoiceItem to a domain InvoiceItem.
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:    m.ItemID,
		InvoiceID: m.InvoiceID,
		Name:      m.Name,
		Price:     m.Price,
		Kind:      domain.ItemKind(m.Kind),
		Quantity:  m.Quantity,
		TaxRate:   m.TaxRate,
	}
}

// ToDomainInvoiceItemSlice converts a slice of model InvoiceItems to domain InvoiceItems.
func ToDomainInvoiceItemSlice(ms []models.InvoiceItem) []domain.InvoiceItem {
	ds := make([]domain.InvoiceItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceItem(m)
	}
	return ds
}
