package model

import "time"

// RecommendationCacheModel mirrors the 'recommendation_caches' table. The
// request and result payloads are stored as JSON text; the table holds at most
// one row (the latest submission).
type RecommendationCacheModel struct {
	ID        int64  `gorm:"primaryKey"`
	Request   string `gorm:"type:text;not null"`
	Result    string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RecommendationCacheModel) TableName() string {
	return "recommendation_caches"
}
