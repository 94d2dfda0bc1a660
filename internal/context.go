package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextSessionKey ctxKey = "session"

// SessionIdentity is the authenticated caller attached to the request
// context by the session middleware. Role is the snapshot captured at
// issuance, not a live lookup.
type SessionIdentity struct {
	UserID string
	Role   string
	Token  string
}

func (s SessionIdentity) IsAdmin() bool {
	return s.Role == "admin"
}

// CanManageUser reports whether the caller may mutate the target user's
// credentials: admins may touch anyone, everyone else only themselves.
func (s SessionIdentity) CanManageUser(targetUserID string) bool {
	return s.IsAdmin() || s.UserID == targetUserID
}

func SessionFromContext(ctx context.Context) (SessionIdentity, bool) {
	if ctx == nil {
		return SessionIdentity{}, false
	}
	identity, ok := ctx.Value(ContextSessionKey).(SessionIdentity)
	return identity, ok
}

func ContextWithSession(ctx context.Context, identity SessionIdentity) context.Context {
	return context.WithValue(ctx, ContextSessionKey, identity)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
