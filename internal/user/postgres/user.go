package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/kprasanna/staff-management/internal"
	userDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository with GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Insert creates the account record. A uniqueness violation on email is
// surfaced as the conflict sentinel so handlers can answer 409 instead
// of a generic failure.
func (r *UserRepository) Insert(u *userDatamodel.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetActiveByID(id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdatePassword(id, passwordHash string, updatedAt time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    updatedAt,
		}).Error
}

func (r *UserRepository) UpdateFields(id string, updates map[string]interface{}) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *UserRepository) ListActive() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}

// isUniqueViolation matches the duplicate-key shapes of the postgres
// driver (SQLSTATE 23505) and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
