package model

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleOwner     UserRole = "owner"     // Books services for their pets
	UserRoleCaregiver UserRole = "caregiver" // Provides walks, sitting, boarding, grooming
	UserRoleAdmin     UserRole = "admin"     // Full access including seeding, user management
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleOwner, UserRoleCaregiver, UserRoleAdmin:
		return true
	}
	return false
}

// User represents an account that can authenticate against the API
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Hash      *string    `json:"-"` // Never expose password hash
	Role      UserRole   `json:"role"`
	Active    bool       `json:"active"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	LoginOn   *time.Time `json:"login_on,omitempty"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsOwner returns true if the user books services as a pet owner
func (u *User) IsOwner() bool {
	return u.Role == UserRoleOwner
}

// IsCaregiver returns true if the user provides services
func (u *User) IsCaregiver() bool {
	return u.Role == UserRoleCaregiver
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Me bundles the account with whichever marketplace profile it carries.
// Exactly one of OwnerProfile/CaregiverProfile is set for non-admin users.
type Me struct {
	User             *User             `json:"user"`
	OwnerProfile     *OwnerProfile     `json:"owner_profile,omitempty"`
	CaregiverProfile *CaregiverProfile `json:"caregiver_profile,omitempty"`
}
