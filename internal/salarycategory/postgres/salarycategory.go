package postgres

import (
	"errors"

	salarycategoryDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/salarycategory"
	"gorm.io/gorm"
)

// SalaryCategoryRepository implements salarycategory.RepositoryAPI using GORM.
type SalaryCategoryRepository struct {
	db *gorm.DB
}

func NewSalaryCategoryRepository(db *gorm.DB) *SalaryCategoryRepository {
	return &SalaryCategoryRepository{db: db}
}

func (r *SalaryCategoryRepository) GetAll() ([]*salarycategoryDatamodel.SalaryCategory, error) {
	var categories []*salarycategoryDatamodel.SalaryCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *SalaryCategoryRepository) GetByID(id string) (*salarycategoryDatamodel.SalaryCategory, error) {
	var c salarycategoryDatamodel.SalaryCategory
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *SalaryCategoryRepository) Create(c *salarycategoryDatamodel.SalaryCategory) error {
	return r.db.Create(c).Error
}

func (r *SalaryCategoryRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&salarycategoryDatamodel.SalaryCategory{}).Error
}
