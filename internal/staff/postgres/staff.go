package postgres

import (
	"errors"

	staffDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/staff"
	"gorm.io/gorm"
)

// StaffRepository implements staff.RepositoryAPI using GORM.
type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(s *staffDatamodel.Staff) error {
	return r.db.Create(s).Error
}

func (r *StaffRepository) GetByID(id string) (*staffDatamodel.Staff, error) {
	var s staffDatamodel.Staff
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) ListActive(location string) ([]*staffDatamodel.Staff, error) {
	var members []*staffDatamodel.Staff
	q := r.db.Where("is_active = ?", true)
	if location != "" {
		q = q.Where("location = ?", location)
	}
	err := q.Order("display_order ASC, name ASC").Find(&members).Error
	return members, err
}

func (r *StaffRepository) UpdateFields(id string, updates map[string]interface{}) error {
	return r.db.Model(&staffDatamodel.Staff{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *StaffRepository) Deactivate(id string) error {
	return r.db.Model(&staffDatamodel.Staff{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
