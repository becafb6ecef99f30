package models

// User mirrors the users table row.
type User struct {
	UserID         string `json:"userID"`
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
	AuthProvider   string `json:"authProvider"`
	ProviderUserID string `json:"-"`
	EmailVerified  bool   `json:"emailVerified"`
	AuditFields
}
