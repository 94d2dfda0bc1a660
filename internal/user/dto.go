package user

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/internal/auth"
	"github.com/kprasanna/staff-management/internal/core/common/validation"
)

// CreateUserDTO is the body of POST /auth-create-user.
type CreateUserDTO struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	Location   *string `json:"location,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
}

// UpdatePasswordDTO is the body of POST /auth-update-password.
type UpdatePasswordDTO struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}

// UpdateUserDTO is the body of PATCH /users/{id}; nil fields are left
// untouched. Password changes go through /auth-update-password only.
type UpdateUserDTO struct {
	FullName   *string `json:"full_name,omitempty"`
	Role       *string `json:"role,omitempty"`
	Location   *string `json:"location,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// isCanonicalUUID accepts only the 36-character hex-and-hyphens form.
// uuid.Parse alone is wider (urn:uuid:, braced, hyphen-less), and ids in
// requests and URLs are always canonical.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	return err == nil && strings.EqualFold(u.String(), s)
}

// hasPasswordComplexity requires at least one letter and one digit.
func hasPasswordComplexity(password string) bool {
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}

func validNewPassword(field, password string) *internal.AppError {
	if len(password) < 8 || len(password) > 128 {
		return internal.NewValidationFieldError(field,
			"password must be 8-128 characters", internal.ErrCodeInvalidPassword)
	}
	if !hasPasswordComplexity(password) {
		return internal.NewValidationFieldError(field,
			"password must contain at least one letter and one number", internal.ErrCodeInvalidPassword)
	}
	return nil
}

func (d CreateUserDTO) Validate() *internal.AppError {
	if !auth.IsValidEmail(strings.TrimSpace(d.Email)) {
		return internal.NewValidationFieldError("email",
			"valid email is required (max 254 characters)", internal.ErrCodeInvalidEmail)
	}
	if err := validNewPassword("password", d.Password); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("full_name", d.FullName).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	if !auth.IsValidRole(d.Role) {
		return internal.NewValidationFieldError("role",
			"role must be admin or manager", internal.ErrCodeInvalidRole)
	}
	if d.Location != nil && len(*d.Location) > 200 {
		return internal.NewValidationFieldError("location",
			"location must not exceed 200 characters", internal.ErrCodeValidationFailed)
	}
	if d.LocationID != nil && *d.LocationID != "" {
		if !isCanonicalUUID(*d.LocationID) {
			return internal.NewValidationFieldError("location_id",
				"location_id must be a valid UUID", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

// ValidateUserID checks only the target id; the password rules run later,
// after authorization, so an unauthorized caller never learns whether the
// password they sent was well-formed.
func (d UpdatePasswordDTO) ValidateUserID() *internal.AppError {
	if !isCanonicalUUID(d.UserID) {
		return internal.NewValidationFieldError("userId",
			"valid userId (UUID format) is required", internal.ErrCodeInvalidUserID)
	}
	return nil
}

func (d UpdatePasswordDTO) ValidatePassword() *internal.AppError {
	return validNewPassword("newPassword", d.NewPassword)
}

func (d UpdateUserDTO) Validate() *internal.AppError {
	if d.FullName != nil {
		v := validation.NewValidator()
		v.Field("full_name", *d.FullName).Required().MaxLength(100)
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if d.Role != nil && !auth.IsValidRole(*d.Role) {
		return internal.NewValidationFieldError("role",
			"role must be admin or manager", internal.ErrCodeInvalidRole)
	}
	if d.Location != nil && len(*d.Location) > 200 {
		return internal.NewValidationFieldError("location",
			"location must not exceed 200 characters", internal.ErrCodeValidationFailed)
	}
	if d.LocationID != nil && *d.LocationID != "" {
		if !isCanonicalUUID(*d.LocationID) {
			return internal.NewValidationFieldError("location_id",
				"location_id must be a valid UUID", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}
