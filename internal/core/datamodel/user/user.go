package user

import "time"

// User maps the app_users table. IDs are application-generated UUIDs so
// the same model works against postgres and the sqlite test database.
type User struct {
	ID           string     `gorm:"primaryKey;column:id"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	FullName     string     `gorm:"column:full_name;not null"`
	Role         string     `gorm:"column:role;not null"`
	Location     *string    `gorm:"column:location"`
	LocationID   *string    `gorm:"column:location_id"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "app_users"
}
