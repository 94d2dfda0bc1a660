package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	sessionDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/session"
)

// SessionRepository is the persistence contract the session store needs
// from the datastore.
type SessionRepository interface {
	Insert(s *sessionDatamodel.Session) error
	GetByToken(token string) (*sessionDatamodel.Session, error)
	Invalidate(token string) error
	InvalidateAllExcept(userID, keepToken string) error
}

// SessionValidation is the fail-closed result of a token check. Reason
// is only set when Valid is false.
type SessionValidation struct {
	Valid  bool
	UserID string
	Role   string
	Reason string
}

// SessionStore issues and validates opaque bearer session tokens backed
// by the app_sessions table.
type SessionStore struct {
	repo SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionStore(repo SessionRepository, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &SessionStore{repo: repo, ttl: ttl, now: time.Now}
}

// Create generates 256 bits of random token material, persists the
// session with the caller's role snapshot, and returns the hex token.
func (s *SessionStore) Create(userID, role string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(raw)

	record := &sessionDatamodel.Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		ExpiresAt: s.now().Add(s.ttl),
		IsValid:   true,
	}
	if err := s.repo.Insert(record); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return token, nil
}

// Validate checks a presented token and fails closed: malformed input,
// a missing record, an invalidated record, an expired record, or any
// datastore error all deny.
func (s *SessionStore) Validate(token string) SessionValidation {
	if !IsWellFormedToken(token) {
		return SessionValidation{Reason: "missing or malformed session token"}
	}

	record, err := s.repo.GetByToken(token)
	if err != nil || record == nil {
		return SessionValidation{Reason: "invalid or expired session"}
	}
	if !record.IsValid {
		return SessionValidation{Reason: "invalid or expired session"}
	}
	if !s.now().Before(record.ExpiresAt) {
		return SessionValidation{Reason: "session expired"}
	}

	return SessionValidation{Valid: true, UserID: record.UserID, Role: record.Role}
}

// Invalidate revokes a single session.
func (s *SessionStore) Invalidate(token string) error {
	return s.repo.Invalidate(token)
}

// InvalidateAllExcept revokes every session of a user except keepToken,
// so a password rotation force-expires sessions elsewhere while the one
// performing the change stays usable.
func (s *SessionStore) InvalidateAllExcept(userID, keepToken string) error {
	return s.repo.InvalidateAllExcept(userID, keepToken)
}

// IsWellFormedToken reports whether the string is syntactically a
// session token: exactly 64 lowercase hex characters. Checked before any
// datastore lookup so junk input is rejected cheaply.
func IsWellFormedToken(token string) bool {
	if len(token) != SessionTokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
