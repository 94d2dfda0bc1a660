package auth

import (
	"time"

	userDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/user"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// SessionTokenLength is the exact length of a hex-encoded session token
// (32 random bytes). Anything else is rejected before touching storage.
const SessionTokenLength = 64

// SanitizedUser is the API-ready view of an account: everything the
// client may see, with the password hash stripped.
type SanitizedUser struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	Location   *string    `json:"location"`
	LocationID *string    `json:"location_id,omitempty"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LoginResult is what a successful authentication returns: the sanitized
// account and the freshly issued opaque session token.
type LoginResult struct {
	User         SanitizedUser `json:"user"`
	SessionToken string        `json:"sessionToken"`
}

func Sanitize(u *userDatamodel.User) SanitizedUser {
	return SanitizedUser{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		Location:   u.Location,
		LocationID: u.LocationID,
		IsActive:   u.IsActive,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager
}
