package dto

import (
	"time"

	"github.com/invmate/invmate_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProfileRequest defines the data needed to create the user's issuer profile.
// Picture is base64-encoded image bytes.
type CreateProfileRequest struct {
	CompanyName        string          `json:"companyName" binding:"required,max=255"`
	FiscalCode         string          `json:"fiscalCode" binding:"max=100"`
	Address            string          `json:"address" binding:"required,max=500"`
	ZipCode            string          `json:"zipCode" binding:"max=20"`
	Country            string          `json:"country" binding:"max=100"`
	Phone              string          `json:"phone" binding:"max=50"`
	Email              string          `json:"email" binding:"omitempty,email"`
	Picture            string          `json:"picture" binding:"omitempty,base64"`
	LocalCurrency      string          `json:"localCurrency" binding:"required,oneof=USD EUR GBP TND"`
	LocalTaxPercentage decimal.Decimal `json:"localTaxPercentage" binding:"dgte0,dlte100"`
}

// UpdateProfileRequest defines the data allowed for updating a profile.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProfileRequest struct {
	CompanyName        *string          `json:"companyName" binding:"omitempty,max=255"`
	FiscalCode         *string          `json:"fiscalCode" binding:"omitempty,max=100"`
	Address            *string          `json:"address" binding:"omitempty,max=500"`
	ZipCode            *string          `json:"zipCode" binding:"omitempty,max=20"`
	Country            *string          `json:"country" binding:"omitempty,max=100"`
	Phone              *string          `json:"phone" binding:"omitempty,max=50"`
	Email              *string          `json:"email" binding:"omitempty,email"`
	Picture            *string          `json:"picture" binding:"omitempty,base64"`
	LocalCurrency      *string          `json:"localCurrency" binding:"omitempty,oneof=USD EUR GBP TND"`
	LocalTaxPercentage *decimal.Decimal `json:"localTaxPercentage" binding:"omitempty,dgte0,dlte100"`
}

// UpdateProfilePictureRequest carries a replacement picture, base64 encoded.
type UpdateProfilePictureRequest struct {
	Picture string `json:"picture" binding:"required,base64"`
}

// ProfileResponse defines the data returned for a profile.
// The picture blob is omitted; clients fetch it separately if needed.
type ProfileResponse struct {
	ProfileID          string          `json:"profileID"`
	CompanyName        string          `json:"companyName"`
	FiscalCode         string          `json:"fiscalCode"`
	Address            string          `json:"address"`
	ZipCode            string          `json:"zipCode"`
	Country            string          `json:"country"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	LocalCurrency      string          `json:"localCurrency"`
	LocalTaxPercentage decimal.Decimal `json:"localTaxPercentage"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToProfileResponse converts a domain.Profile to ProfileResponse DTO
func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileID:          p.ProfileID,
		CompanyName:        p.CompanyName,
		FiscalCode:         p.FiscalCode,
		Address:            p.Address,
		ZipCode:            p.ZipCode,
		Country:            p.Country,
		Phone:              p.Phone,
		Email:              p.Email,
		LocalCurrency:      p.LocalCurrency,
		LocalTaxPercentage: p.LocalTaxPercentage,
		CreatedAt:          p.CreatedAt,
		LastUpdatedAt:      p.LastUpdatedAt,
	}
}
