package dto

import (
	"time"

	"github.com/invmate/invmate_app/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	CompanyName string `json:"companyName" binding:"required,max=255"`
	FiscalCode  string `json:"fiscalCode" binding:"max=100"`
	Address     string `json:"address" binding:"required,max=500"`
	ZipCode     string `json:"zipCode" binding:"max=20"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
	Country     string `json:"country" binding:"max=100"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateClientRequest struct {
	CompanyName *string `json:"companyName" binding:"omitempty,max=255"`
	FiscalCode  *string `json:"fiscalCode" binding:"omitempty,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	ZipCode     *string `json:"zipCode" binding:"omitempty,max=20"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string    `json:"clientID"`
	CompanyName   string    `json:"companyName"`
	FiscalCode    string    `json:"fiscalCode"`
	Address       string    `json:"address"`
	ZipCode       string    `json:"zipCode"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Country       string    `json:"country"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		CompanyName:   c.CompanyName,
		FiscalCode:    c.FiscalCode,
		Address:       c.Address,
		ZipCode:       c.ZipCode,
		Phone:         c.Phone,
		Email:         c.Email,
		Country:       c.Country,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to a slice of ClientResponse DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return res
}
