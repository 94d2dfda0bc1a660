package staff

import (
	"time"

	staffDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/staff"
)

const (
	TypeFullTime = "full-time"
	TypePartTime = "part-time"
)

// Staff is the domain model for a staff member. This service only
// stores and serves the records; salary computation happens client-side.
type Staff struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Shift        *string   `json:"shift,omitempty"`
	RatePerDay   *int64    `json:"rate_per_day,omitempty"`
	RatePerShift *int64    `json:"rate_per_shift,omitempty"`
	Experience   string    `json:"experience"`
	BasicSalary  int64     `json:"basic_salary"`
	Incentive    int64     `json:"incentive"`
	HRA          int64     `json:"hra"`
	TotalSalary  int64     `json:"total_salary"`
	JoinedDate   string    `json:"joined_date"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder *int      `json:"display_order,omitempty"`
	ContactNo    *string   `json:"contact_number,omitempty"`
	Address      *string   `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromDataModel(s *staffDatamodel.Staff) *Staff {
	return &Staff{
		ID:           s.ID,
		Name:         s.Name,
		Location:     s.Location,
		Type:         s.Type,
		Shift:        s.Shift,
		RatePerDay:   s.RatePerDay,
		RatePerShift: s.RatePerShift,
		Experience:   s.Experience,
		BasicSalary:  s.BasicSalary,
		Incentive:    s.Incentive,
		HRA:          s.HRA,
		TotalSalary:  s.TotalSalary,
		JoinedDate:   s.JoinedDate,
		IsActive:     s.IsActive,
		DisplayOrder: s.DisplayOrder,
		ContactNo:    s.ContactNo,
		Address:      s.Address,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func ToDataModel(s *Staff) *staffDatamodel.Staff {
	return &staffDatamodel.Staff{
		ID:           s.ID,
		Name:         s.Name,
		Location:     s.Location,
		Type:         s.Type,
		Shift:        s.Shift,
		RatePerDay:   s.RatePerDay,
		RatePerShift: s.RatePerShift,
		Experience:   s.Experience,
		BasicSalary:  s.BasicSalary,
		Incentive:    s.Incentive,
		HRA:          s.HRA,
		TotalSalary:  s.TotalSalary,
		JoinedDate:   s.JoinedDate,
		IsActive:     s.IsActive,
		DisplayOrder: s.DisplayOrder,
		ContactNo:    s.ContactNo,
		Address:      s.Address,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
