package models

// Client mirrors the clients table row.
type Client struct {
	ClientID    string `json:"clientID"`
	UserID      string `json:"userID"`
	CompanyName string `json:"companyName"`
	FiscalCode  string `json:"fiscalCode"`
	Address     string `json:"address"`
	ZipCode     string `json:"zipCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Country     string `json:"country"`
	AuditFields
}
