package model

import "time"

// PreferenceModel mirrors the 'preferences' table, a small key/value store for
// client-side flags such as the coupon-wallet read marker.
type PreferenceModel struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PreferenceModel) TableName() string {
	return "preferences"
}
