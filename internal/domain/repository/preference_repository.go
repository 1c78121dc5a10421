package repository

import "context"

// PreferenceRepository persists small client-side flags. Currently only the
// coupon-wallet read marker (the unread dot on the profile tab).
type PreferenceRepository interface {
	// CouponRead reports whether the coupon wallet has been opened since the
	// last new coupon. Missing flag means unread.
	CouponRead(ctx context.Context) (bool, error)

	// SetCouponRead stores the coupon-wallet read marker.
	SetCouponRead(ctx context.Context, read bool) error
}
