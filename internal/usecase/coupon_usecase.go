package usecase

import (
	"context"

	"gachigage/internal/domain/entity"
)

// CouponUsecase defines the interface for the coupon wallet.
type CouponUsecase interface {
	// List returns the wallet and marks it read.
	List(ctx context.Context) ([]*entity.Coupon, error)

	// Unread reports whether the wallet holds coupons the user has not seen.
	Unread(ctx context.Context) (bool, error)

	// RedemptionQR renders the PNG QR code presented at the store.
	RedemptionQR(ctx context.Context, couponID int64) ([]byte, error)
}
