package salarycategory

import "time"

// SalaryCategory maps the salary_categories table. Key is the stable
// identifier supplements are stored under on staff records.
type SalaryCategory struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	Key       string    `gorm:"column:key;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (SalaryCategory) TableName() string {
	return "salary_categories"
}
