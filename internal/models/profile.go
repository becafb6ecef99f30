package models

import "github.com/shopspring/decimal"

// Profile mirrors the profiles table row.
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
	Picture            []byte          `json:"-"`
	LocalCurrency      string          `json:"localCurrency"`
	LocalTaxPercentage decimal.Decimal `json:"localTaxPercentage"`
	AuditFields
}
