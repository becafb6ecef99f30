package mapping

import (
	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/invmate/invmate_app/internal/models"
)

// ToModelProfile converts a domain Profile to a model Profile.
func ToModelProfile(d domain.Profile) models.Profile {
	return models.Profile{
		ProfileID:          d.ProfileID,
		UserID:             d.UserID,
		CompanyName:        d.CompanyName,
		FiscalCode:         d.FiscalCode,
		Address:            d.Address,
		ZipCode:            d.ZipCode,
		Country:            d.Country,
		Phone:              d.Phone,
		Email:              d.Email,
		Picture:            d.Picture,
		LocalCurrency:      d.LocalCurrency,
		LocalTaxPercentage: d.LocalTaxPercentage,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProfile converts a model Profile to a domain Profile.
func ToDomainProfile(m models.Profile) domain.Profile {
	return domain.Profile{
		ProfileID:          m.ProfileID,
		UserID:             m.UserID,
		CompanyName:        m.CompanyName,
		FiscalCode:         m.FiscalCode,
		Address:            m.Address,
		ZipCode:            m.ZipCode,
		Country:            m.Country,
		Phone:              m.Phone,
		Email:              m.Email,
		Picture:            m.Picture,
		LocalCurrency:      m.LocalCurrency,
		LocalTaxPercentage: m.LocalTaxPercentage,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
