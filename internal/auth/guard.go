package auth

import (
	"log/slog"

	"github.com/kprasanna/staff-management/internal"
)

// Guard validates presented session tokens and enforces role
// requirements for protected operations. Authorization decisions use the
// role snapshot captured at session issuance; a role change takes effect
// at the user's next login.
type Guard struct {
	sessions *SessionStore
	logger   *slog.Logger
}

func NewGuard(sessions *SessionStore, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{sessions: sessions, logger: logger}
}

// RequireSession resolves a presented token to an identity, or an
// unauthorized error. The token itself is carried on the identity so
// handlers can exclude it from bulk invalidation.
func (g *Guard) RequireSession(token string) (internal.SessionIdentity, *internal.AppError) {
	check := g.sessions.Validate(token)
	if !check.Valid {
		g.logger.Warn("session rejected", "reason", check.Reason)
		if check.Reason == "session expired" {
			return internal.SessionIdentity{}, internal.ErrSessionExpired
		}
		return internal.SessionIdentity{}, internal.ErrSessionInvalid
	}
	return internal.SessionIdentity{
		UserID: check.UserID,
		Role:   check.Role,
		Token:  token,
	}, nil
}

// RequireAdmin enforces the admin-only composition rule.
func (g *Guard) RequireAdmin(identity internal.SessionIdentity) *internal.AppError {
	if !identity.IsAdmin() {
		g.logger.Warn("access denied: admin role required",
			"user_id", identity.UserID, "role", identity.Role)
		return internal.ErrAdminRequired
	}
	return nil
}

// RequireUserAccess enforces the admin-or-self rule used by the password
// update operation.
func (g *Guard) RequireUserAccess(identity internal.SessionIdentity, targetUserID string) *internal.AppError {
	if !identity.CanManageUser(targetUserID) {
		g.logger.Warn("access denied: target user not accessible",
			"user_id", identity.UserID, "target_user_id", targetUserID)
		return internal.ErrNotOwnAccount
	}
	return nil
}
