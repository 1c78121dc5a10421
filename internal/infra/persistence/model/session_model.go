package model

import "time"

// SessionModel mirrors the 'sessions' table. A fixed single-row key keeps at
// most one persisted login, the durable stand-in for the web client's
// localStorage triple.
type SessionModel struct {
	ID           int64  `gorm:"primaryKey"`
	UserID       int64  `gorm:"not null"`
	AccessToken  string `gorm:"type:text;not null"`
	RefreshToken string `gorm:"type:text;not null"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
