package auth

import (
	"log/slog"
	"time"

	"github.com/kprasanna/staff-management/internal"
	userDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/user"
)

// UserRepository is the account-table contract the login flow needs.
type UserRepository interface {
	// GetActiveByEmail returns nil, nil when no active user matches.
	GetActiveByEmail(email string) (*userDatamodel.User, error)
	UpdatePasswordHash(userID, passwordHash string, lastLogin time.Time) error
	UpdateLastLogin(userID string, lastLogin time.Time) error
}

// Service orchestrates the login flow: input validation, rate limiting,
// credential verification with legacy-hash upgrade, and session issuance.
type Service struct {
	users    UserRepository
	sessions *SessionStore
	hasher   *Hasher
	limiter  *RateLimiter
	logger   *slog.Logger

	// notFoundDelay equalizes response timing between "no such user" and
	// "wrong password" to blunt user enumeration. Best effort, not a
	// constant-time guarantee.
	notFoundDelay time.Duration
	sleep         func(time.Duration)
}

func NewService(users UserRepository, sessions *SessionStore, hasher *Hasher, limiter *RateLimiter, notFoundDelay time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:         users,
		sessions:      sessions,
		hasher:        hasher,
		limiter:       limiter,
		logger:        logger,
		notFoundDelay: notFoundDelay,
		sleep:         time.Sleep,
	}
}

// Login authenticates credentials and issues a session. Every denial
// before the credential check happens without touching storage; every
// credential denial is the same generic error regardless of whether the
// email exists.
func (s *Service) Login(dto LoginDTO) (*LoginResult, *internal.AppError) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := dto.NormalizedEmail()

	if blocked, retryAfter := s.limiter.Check(email); blocked {
		s.logger.Warn("login locked out", "retry_after_seconds", retryAfter)
		return nil, internal.NewRateLimitedError(
			"Too many failed attempts, try again later", retryAfter)
	}

	u, err := s.users.GetActiveByEmail(email)
	if err != nil {
		// Fail closed: an ambiguous datastore state denies, and counts as
		// a failure so probing during an outage still locks out.
		s.logger.Error("user lookup failed", "error", err)
		s.rejectUnknownUser(email)
		return nil, internal.ErrInvalidCredentials
	}
	if u == nil || u.PasswordHash == "" {
		s.rejectUnknownUser(email)
		return nil, internal.ErrInvalidCredentials
	}

	if !s.hasher.Verify(dto.Password, u.PasswordHash) {
		// No artificial delay here: the bcrypt comparison is already slow.
		s.limiter.RecordFailure(email)
		return nil, internal.ErrInvalidCredentials
	}

	s.limiter.Clear(email)

	token, err := s.sessions.Create(u.ID, u.Role)
	if err != nil {
		s.logger.Error("session issuance failed", "user_id", u.ID, "error", err)
		return nil, internal.NewInternalError("internal server error", err)
	}

	now := time.Now()
	if s.hasher.NeedsUpgrade(u.PasswordHash) {
		if upgraded, hashErr := s.hasher.Hash(dto.Password); hashErr != nil {
			s.logger.Error("hash upgrade failed", "user_id", u.ID, "error", hashErr)
		} else if updErr := s.users.UpdatePasswordHash(u.ID, upgraded, now); updErr != nil {
			// The login itself succeeded; the legacy digest survives until
			// the next successful login retries the upgrade.
			s.logger.Error("hash upgrade persist failed", "user_id", u.ID, "error", updErr)
		} else {
			s.logger.Info("upgraded legacy password hash", "user_id", u.ID)
			u.PasswordHash = upgraded
		}
	} else if err := s.users.UpdateLastLogin(u.ID, now); err != nil {
		s.logger.Warn("last_login update failed", "user_id", u.ID, "error", err)
	}

	return &LoginResult{User: Sanitize(u), SessionToken: token}, nil
}

// Logout invalidates the presented session.
func (s *Service) Logout(token string) *internal.AppError {
	if !IsWellFormedToken(token) {
		return internal.ErrSessionInvalid
	}
	if err := s.sessions.Invalidate(token); err != nil {
		return internal.NewInternalError("internal server error", err)
	}
	return nil
}

func (s *Service) rejectUnknownUser(email string) {
	s.limiter.RecordFailure(email)
	if s.notFoundDelay > 0 {
		s.sleep(s.notFoundDelay)
	}
}
