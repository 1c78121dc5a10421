package model

import "time"

// ReceiptDraftModel mirrors the 'receipt_drafts' table, one row per mission
// with an in-flight receipt verification.
type ReceiptDraftModel struct {
	MissionID  int64  `gorm:"primaryKey"`
	State      string `gorm:"type:varchar(20);not null"`
	Image      []byte `gorm:"type:blob"`
	RawText    string `gorm:"type:text"`
	StoreName  string `gorm:"type:varchar(255)"`
	Address    string `gorm:"type:varchar(255)"`
	Phone      string `gorm:"type:varchar(50)"`
	VisitedAt  string `gorm:"type:varchar(50)"`
	TotalPrice string `gorm:"type:varchar(50)"`
	Modified   bool   `gorm:"not null;default:false"`
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReceiptDraftModel) TableName() string {
	return "receipt_drafts"
}
