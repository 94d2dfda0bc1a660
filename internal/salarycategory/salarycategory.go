package salarycategory

import (
	"time"

	salarycategoryDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/salarycategory"
)

// SalaryCategory is a named salary supplement bucket (e.g. meal
// allowance); staff records store supplement amounts keyed by Key.
type SalaryCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(c *salarycategoryDatamodel.SalaryCategory) *SalaryCategory {
	return &SalaryCategory{
		ID:        c.ID,
		Name:      c.Name,
		Key:       c.Key,
		CreatedAt: c.CreatedAt,
	}
}

func ToDataModel(c *SalaryCategory) *salarycategoryDatamodel.SalaryCategory {
	return &salarycategoryDatamodel.SalaryCategory{
		ID:        c.ID,
		Name:      c.Name,
		Key:       c.Key,
		CreatedAt: c.CreatedAt,
	}
}
