package entity

import "time"

// Coupon is one entry of the coupon wallet.
type Coupon struct {
	ID             int64
	StoreName      string
	DiscountAmount int
	ExpiresAt      time.Time
	ImageURL       string
}
