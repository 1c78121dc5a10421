package impl

import (
	"context"
	"log/slog"

	deliverycontext "gachigage/internal/delivery/context"
	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/domain/service"
	"gachigage/internal/usecase"

	"github.com/pkg/errors"
)

// couponService implements the CouponUsecase interface.
type couponService struct {
	gateway     service.BackendGateway
	preferences repository.PreferenceRepository
	qrcode      service.QRCodeService
	logger      *slog.Logger
}

// NewCouponService is the constructor for couponService.
func NewCouponService(
	gateway service.BackendGateway,
	preferences repository.PreferenceRepository,
	qrcode service.QRCodeService,
	logger *slog.Logger,
) usecase.CouponUsecase {
	return &couponService{
		gateway:     gateway,
		preferences: preferences,
		qrcode:      qrcode,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *couponService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the wallet and marks it read. The unread marker is one boolean
// for the whole wallet, not a per-coupon receipt.
func (srv *couponService) List(ctx context.Context) ([]*entity.Coupon, error) {
	coupons, err := srv.gateway.Coupons(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	if err := srv.preferences.SetCouponRead(ctx, true); err != nil {
		srv.log(ctx).Error("Failed to mark coupons read", slog.Any("error", err))
	}

	return coupons, nil
}

// Unread reports whether the wallet has been opened since the flag was set.
func (srv *couponService) Unread(ctx context.Context) (bool, error) {
	read, err := srv.preferences.CouponRead(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to read coupon flag")
	}

	return !read, nil
}

// RedemptionQR renders the PNG QR code presented at the store.
func (srv *couponService) RedemptionQR(ctx context.Context, couponID int64) ([]byte, error) {
	coupons, err := srv.gateway.Coupons(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	for _, coupon := range coupons {
		if coupon.ID == couponID {
			png, err := srv.qrcode.GenerateCouponQR(couponID)
			if err != nil {
				return nil, errors.Wrap(err, "failed to generate coupon qr")
			}

			return png, nil
		}
	}

	return nil, domainerrors.ErrCouponNotFound
}
