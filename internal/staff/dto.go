package staff

import (
	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/internal/core/common/validation"
)

// CreateStaffDTO is the body of POST /staff.
type CreateStaffDTO struct {
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Type         string  `json:"type"`
	Shift        *string `json:"shift,omitempty"`
	RatePerDay   *int64  `json:"rate_per_day,omitempty"`
	RatePerShift *int64  `json:"rate_per_shift,omitempty"`
	Experience   string  `json:"experience"`
	BasicSalary  int64   `json:"basic_salary"`
	Incentive    int64   `json:"incentive"`
	HRA          int64   `json:"hra"`
	TotalSalary  int64   `json:"total_salary"`
	JoinedDate   string  `json:"joined_date"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	ContactNo    *string `json:"contact_number,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// UpdateStaffDTO is the body of PATCH /staff/{id}; nil fields are left
// untouched.
type UpdateStaffDTO struct {
	Name         *string `json:"name,omitempty"`
	Location     *string `json:"location,omitempty"`
	Type         *string `json:"type,omitempty"`
	Shift        *string `json:"shift,omitempty"`
	RatePerDay   *int64  `json:"rate_per_day,omitempty"`
	RatePerShift *int64  `json:"rate_per_shift,omitempty"`
	Experience   *string `json:"experience,omitempty"`
	BasicSalary  *int64  `json:"basic_salary,omitempty"`
	Incentive    *int64  `json:"incentive,omitempty"`
	HRA          *int64  `json:"hra,omitempty"`
	TotalSalary  *int64  `json:"total_salary,omitempty"`
	JoinedDate   *string `json:"joined_date,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	ContactNo    *string `json:"contact_number,omitempty"`
	Address      *string `json:"address,omitempty"`
}

func validStaffType(t string) bool {
	return t == TypeFullTime || t == TypePartTime
}

func (d CreateStaffDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("location", d.Location).Required().MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	if !validStaffType(d.Type) {
		return internal.NewValidationFieldError("type",
			"type must be full-time or part-time", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateStaffDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(100)
	}
	if d.Location != nil {
		v.Field("location", *d.Location).Required().MaxLength(200)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if d.Type != nil && !validStaffType(*d.Type) {
		return internal.NewValidationFieldError("type",
			"type must be full-time or part-time", internal.ErrCodeValidationFailed)
	}
	return nil
}
