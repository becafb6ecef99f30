package domain

// AuthProvider identifies how a user account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User is the authenticated tenant principal. Each user exclusively owns its
// profile, clients and invoices.
type User struct {
	UserID         string       `json:"userID"`
	Username       string       `json:"username"`
	PasswordHash   string       `json:"-"` // empty for OAuth-only accounts
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"` // external provider's subject, if any
	EmailVerified  bool         `json:"emailVerified"`
	AuditFields
}

// GoogleUserInfo holds the subset of Google's userinfo payload the
// application cares about.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
