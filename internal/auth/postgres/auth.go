package postgres

import (
	"errors"
	"time"

	sessionDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/session"
	userDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository backs both the login flow's user lookups and the session
// store with GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetActiveByEmail returns the active user for a normalized email, or
// nil when no such account exists. Inactive accounts are invisible to
// authentication.
func (r *Repository) GetActiveByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePasswordHash persists an upgraded digest together with the login
// timestamp in one write.
func (r *Repository) UpdatePasswordHash(userID, passwordHash string, lastLogin time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"last_login":    lastLogin,
			"updated_at":    time.Now(),
		}).Error
}

func (r *Repository) UpdateLastLogin(userID string, lastLogin time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("last_login", lastLogin).Error
}

// ---- session table ----

func (r *Repository) Insert(s *sessionDatamodel.Session) error {
	return r.db.Create(s).Error
}

func (r *Repository) GetByToken(token string) (*sessionDatamodel.Session, error) {
	var s sessionDatamodel.Session
	err := r.db.Where("token = ?", token).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Invalidate(token string) error {
	return r.db.Model(&sessionDatamodel.Session{}).
		Where("token = ?", token).
		Update("is_valid", false).Error
}

// InvalidateAllExcept flips is_valid for every other session of the
// user; the session performing a password change stays live.
func (r *Repository) InvalidateAllExcept(userID, keepToken string) error {
	return r.db.Model(&sessionDatamodel.Session{}).
		Where("user_id = ? AND token <> ?", userID, keepToken).
		Update("is_valid", false).Error
}
