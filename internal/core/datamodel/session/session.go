package session

import "time"

// Session maps the app_sessions table. Token is the opaque 64-hex bearer
// credential; Role is the snapshot captured at issuance.
type Session struct {
	Token     string    `gorm:"primaryKey;column:token"`
	UserID    string    `gorm:"column:user_id;index;not null"`
	Role      string    `gorm:"column:role;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	IsValid   bool      `gorm:"column:is_valid;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Session) TableName() string {
	return "app_sessions"
}
