package domain

// Client is a billing counterpart owned by exactly one user. An invoice must
// never reference a client owned by a different user.
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

// ClientUpdate carries the optional fields of a client patch.
// Nil fields are left unchanged.
type ClientUpdate struct {
	CompanyName *string
	FiscalCode  *string
	Address     *string
	ZipCode     *string
	Phone       *string
	Email       *string
	Country     *string
}
