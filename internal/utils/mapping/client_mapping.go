package mapping

import (
	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client.
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		UserID:      d.UserID,
		CompanyName: d.CompanyName,
		FiscalCode:  d.FiscalCode,
		Address:     d.Address,
		ZipCode:     d.ZipCode,
		Phone:       d.Phone,
		Email:       d.Email,
		Country:     d.Country,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client.
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		UserID:      m.UserID,
		CompanyName: m.CompanyName,
		FiscalCode:  m.FiscalCode,
		Address:     m.Address,
		ZipCode:     m.ZipCode,
		Phone:       m.Phone,
		Email:       m.Email,
		Country:     m.Country,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients.
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
