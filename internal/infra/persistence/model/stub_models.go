package model

import "time"

// The stub_* tables back the bundled stand-in for the remote backend. They
// live in the same sqlite file but are only migrated and touched when the
// stub is enabled.

// StubUserModel mirrors the 'stub_users' table.
type StubUserModel struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	Identify        string  `gorm:"type:varchar(12);uniqueIndex;not null"`
	PasswordHash    string  `gorm:"type:varchar(255);not null"`
	Username        string  `gorm:"type:varchar(15);not null"`
	Sido            string  `gorm:"type:varchar(20);not null"`
	Gugun           string  `gorm:"type:varchar(20);not null"`
	MarketingAgree  *bool
	RegionChangedAt *time.Time
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (StubUserModel) TableName() string {
	return "stub_users"
}

// StubStoreModel mirrors the 'stub_stores' table, the fixture catalogue the
// stub recommends from.
type StubStoreModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(50);not null"`
	Category     string `gorm:"type:varchar(30);not null;index"`
	Neighborhood string `gorm:"type:varchar(20);not null;index"`
	AddressRoad  string `gorm:"type:varchar(255);not null"`
	AddressEx    string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(20)"`
	URL          string `gorm:"type:varchar(255)"`
	Moods        string `gorm:"type:text"` // comma-separated mood tags
}

// TableName explicitly sets the table name for GORM.
func (StubStoreModel) TableName() string {
	return "stub_stores"
}

// StubRecommendationModel mirrors the 'stub_recommendations' table: stores
// already recommended to a user, used for the duplicate policy and the
// confirmed/past lists.
type StubRecommendationModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	StoreID   int64  `gorm:"not null"`
	Category  string `gorm:"type:varchar(30);not null"`
	Name      string `gorm:"type:varchar(50);not null"`
	Address   string `gorm:"type:varchar(255);not null"`
	URL       string `gorm:"type:varchar(255)"`
	Confirmed bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StubRecommendationModel) TableName() string {
	return "stub_recommendations"
}

// StubMissionModel mirrors the 'stub_missions' table.
type StubMissionModel struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Title   string `gorm:"type:varchar(100);not null"`
	Body    string `gorm:"type:text;not null"`
	Score   int    `gorm:"not null"`
	Special bool   `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (StubMissionModel) TableName() string {
	return "stub_missions"
}

// StubVerificationModel mirrors the 'stub_verifications' table: accepted
// receipt submissions per user and mission.
type StubVerificationModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_stub_verification_user_mission"`
	MissionID int64 `gorm:"not null;uniqueIndex:idx_stub_verification_user_mission"`
	StoreName string `gorm:"type:varchar(50)"`
	Score     int    `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StubVerificationModel) TableName() string {
	return "stub_verifications"
}

// StubReviewModel mirrors the 'stub_reviews' table.
type StubReviewModel struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	UserID    int64   `gorm:"not null;index"`
	MissionID int64   `gorm:"not null"`
	StoreName string  `gorm:"type:varchar(50)"`
	Tags      string  `gorm:"type:varchar(50);not null"` // comma-separated 1-based indices
	Content   *string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StubReviewModel) TableName() string {
	return "stub_reviews"
}

// StubCouponModel mirrors the 'stub_coupons' table.
type StubCouponModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	UserID         int64  `gorm:"not null;index"`
	StoreName      string `gorm:"type:varchar(50);not null"`
	DiscountAmount int    `gorm:"not null"`
	ExpiresAt      time.Time
	ImageURL       string `gorm:"type:varchar(255)"`
}

// TableName explicitly sets the table name for GORM.
func (StubCouponModel) TableName() string {
	return "stub_coupons"
}
