package auth

import (
	"regexp"
	"strings"

	"github.com/kprasanna/staff-management/internal"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Deliberately loose: one @, a dot in the domain, no whitespace. The
// mailbox is the real arbiter of validity.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	maxEmailLength    = 254
	maxPasswordLength = 128
)

func IsValidEmail(email string) bool {
	return len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// NormalizedEmail returns the canonical form used for lookups and
// rate-limit keys: trimmed and lowercased.
func (d LoginDTO) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(d.Email))
}

// Validate checks request shape only; it runs before rate limiting so a
// malformed request never counts against the caller.
func (d LoginDTO) Validate() *internal.AppError {
	if !IsValidEmail(strings.TrimSpace(d.Email)) {
		return internal.NewValidationFieldError("email",
			"valid email is required (max 254 characters)", internal.ErrCodeInvalidEmail)
	}
	if len(d.Password) < 1 || len(d.Password) > maxPasswordLength {
		return internal.NewValidationFieldError("password",
			"password is required (max 128 characters)", internal.ErrCodeInvalidPassword)
	}
	return nil
}
