package staff

import "time"

// Staff maps the staff table. Salary component amounts are stored in
// whole rupees; computation over them lives outside this service.
type Staff struct {
	ID           string    `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name;not null"`
	Location     string    `gorm:"column:location;not null"`
	Type         string    `gorm:"column:type;not null"`
	Shift        *string   `gorm:"column:shift"`
	RatePerDay   *int64    `gorm:"column:rate_per_day"`
	RatePerShift *int64    `gorm:"column:rate_per_shift"`
	Experience   string    `gorm:"column:experience"`
	BasicSalary  int64     `gorm:"column:basic_salary"`
	Incentive    int64     `gorm:"column:incentive"`
	HRA          int64     `gorm:"column:hra"`
	TotalSalary  int64     `gorm:"column:total_salary"`
	JoinedDate   string    `gorm:"column:joined_date"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	DisplayOrder *int      `gorm:"column:display_order"`
	ContactNo    *string   `gorm:"column:contact_number"`
	Address      *string   `gorm:"column:address"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Staff) TableName() string {
	return "staff"
}
