package domain

import "github.com/shopspring/decimal"

// Profile holds the invoicing account's own company details, used as the
// issuer block on rendered documents. Exactly one profile exists per user.
type Profile struct {
	ProfileID          string          `json:"profileID"`
	UserID             string          `json:"userID"`
	CompanyName        string          `json:"companyName"`
	FiscalCode         string          `json:"fiscalCode"`
	Address            string          `json:"address"`
	ZipCode            string          `json:"zipCode"`
	Country            string          `json:"country"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email,omitempty"`
	Picture            []byte          `json:"-"` // opaque logo image blob
	LocalCurrency      string          `json:"localCurrency"`
	LocalTaxPercentage decimal.Decimal `json:"localTaxPercentage"`
	AuditFields
}

// ProfileUpdate carries the optional fields of a profile patch.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	CompanyName        *string
	FiscalCode         *string
	Address            *string
	ZipCode            *string
	Country            *string
	Phone              *string
	Email              *string
	Picture            *[]byte
	LocalCurrency      *string
	LocalTaxPercentage *decimal.Decimal
}
