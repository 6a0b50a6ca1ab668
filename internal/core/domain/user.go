package domain

import "time"

// Authentication providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Selectable roles. Role is empty until the user picks one.
const (
	RoleUser        = "user"
	RoleContributor = "contributor"
)

// ValidRole reports whether r is a role a user may select.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleContributor
}

// User models an account. PasswordHash is set iff AuthProvider is "local";
// Google accounts carry a GoogleID instead.
type User struct {
	ID             string     `json:"_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Role           string     `json:"role,omitempty"`
	AuthProvider   string     `json:"authProvider"`
	GoogleID       string     `json:"-"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	EmailVerified  bool       `json:"emailVerified"`
	IsActive       bool       `json:"isActive"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
