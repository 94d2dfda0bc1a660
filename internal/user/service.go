package user

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/internal/auth"
	userDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/user"
)

// Repository is the user-table contract for account management.
type Repository interface {
	// Insert returns internal.ErrEmailTaken on a uniqueness violation.
	Insert(u *userDatamodel.User) error
	// GetActiveByID returns nil, nil when no active user matches.
	GetActiveByID(id string) (*userDatamodel.User, error)
	// GetByID returns nil, nil when no user matches, active or not.
	GetByID(id string) (*userDatamodel.User, error)
	UpdatePassword(id, passwordHash string, updatedAt time.Time) error
	UpdateFields(id string, updates map[string]interface{}) error
	ListActive() ([]*userDatamodel.User, error)
}

// Service owns account provisioning, password rotation, listing, and
// profile updates. Callers are assumed to already hold a valid session;
// role and ownership rules are enforced here via the guard.
type Service struct {
	repo     Repository
	hasher   *auth.Hasher
	sessions *auth.SessionStore
	guard    *auth.Guard
	logger   *slog.Logger
}

func NewService(repo Repository, hasher *auth.Hasher, sessions *auth.SessionStore, guard *auth.Guard, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
		guard:    guard,
		logger:   logger,
	}
}

// Create provisions an account. Admin-only; the route middleware
// enforces the session, the guard re-checks the role here so the rule
// holds even for callers that bypass the router.
func (s *Service) Create(identity internal.SessionIdentity, dto CreateUserDTO) (*auth.SanitizedUser, *internal.AppError) {
	if appErr := s.guard.RequireAdmin(identity); appErr != nil {
		return nil, appErr
	}
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}

	record := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(dto.Email)),
		FullName:     dto.FullName,
		Role:         dto.Role,
		Location:     dto.Location,
		LocationID:   dto.LocationID,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.repo.Insert(record); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewInternalError("internal server error", err)
	}

	s.logger.Info("user created", "user_id", record.ID, "role", record.Role, "created_by", identity.UserID)

	sanitized := auth.Sanitize(record)
	return &sanitized, nil
}

// UpdatePassword rotates a user's credential and force-expires every
// other session for that user. The caller's own session survives.
func (s *Service) UpdatePassword(identity internal.SessionIdentity, dto UpdatePasswordDTO) *internal.AppError {
	// Ownership is decided before the password is inspected: a caller who
	// may not touch the target account gets 403 regardless of payload.
	if appErr := dto.ValidateUserID(); appErr != nil {
		return appErr
	}
	if appErr := s.guard.RequireUserAccess(identity, dto.UserID); appErr != nil {
		return appErr
	}
	if appErr := dto.ValidatePassword(); appErr != nil {
		return appErr
	}

	target, err := s.repo.GetActiveByID(dto.UserID)
	if err != nil {
		return internal.NewInternalError("internal server error", err)
	}
	if target == nil {
		return internal.ErrUserNotFound
	}

	hash, err := s.hasher.Hash(dto.NewPassword)
	if err != nil {
		return internal.NewInternalError("internal server error", err)
	}

	if err := s.repo.UpdatePassword(target.ID, hash, time.Now()); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}

	if err := s.sessions.InvalidateAllExcept(target.ID, identity.Token); err != nil {
		// Stale sessions surviving a rotation defeats the point of the
		// rotation, so this is an error, not a warning.
		return internal.NewInternalError("failed to invalidate sessions", err)
	}

	s.logger.Info("password updated", "user_id", target.ID, "updated_by", identity.UserID)
	return nil
}

// List returns all active accounts, sanitized, ordered by full name.
func (s *Service) List() ([]auth.SanitizedUser, *internal.AppError) {
	records, err := s.repo.ListActive()
	if err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}
	users := make([]auth.SanitizedUser, 0, len(records))
	for _, record := range records {
		users = append(users, auth.Sanitize(record))
	}
	return users, nil
}

// Update applies a partial profile update. Deactivation (is_active =
// false) is the soft delete; records are never removed.
func (s *Service) Update(identity internal.SessionIdentity, userID string, dto UpdateUserDTO) (*auth.SanitizedUser, *internal.AppError) {
	if appErr := s.guard.RequireAdmin(identity); appErr != nil {
		return nil, appErr
	}
	if !isCanonicalUUID(userID) {
		return nil, internal.NewValidationFieldError("id",
			"valid user id (UUID format) is required", internal.ErrCodeInvalidUserID)
	}
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	target, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}
	if target == nil {
		return nil, internal.ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if dto.FullName != nil {
		updates["full_name"] = *dto.FullName
	}
	if dto.Role != nil {
		updates["role"] = *dto.Role
	}
	if dto.Location != nil {
		updates["location"] = dto.Location
	}
	if dto.LocationID != nil {
		updates["location_id"] = dto.LocationID
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.repo.UpdateFields(userID, updates); err != nil {
			return nil, internal.NewInternalError("internal server error", err)
		}
	}

	refreshed, err := s.repo.GetByID(userID)
	if err != nil || refreshed == nil {
		return nil, internal.NewInternalError("internal server error", err)
	}

	sanitized := auth.Sanitize(refreshed)
	return &sanitized, nil
}
