package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gachigage/internal/delivery/http/response"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CouponHandler holds dependencies for the coupon wallet.
type CouponHandler struct {
	uc     usecase.CouponUsecase
	logger *slog.Logger
}

// NewCouponHandler is the constructor for CouponHandler, injected by Fx.
func NewCouponHandler(uc usecase.CouponUsecase, logger *slog.Logger) *CouponHandler {
	return &CouponHandler{uc: uc, logger: logger}
}

type couponResponse struct {
	ID             int64  `json:"coupon_id"`
	StoreName      string `json:"store_name"`
	DiscountAmount int    `json:"discount_amount"`
	ExpiresAt      string `json:"expires_at"`
	ImageURL       string `json:"image_url,omitempty"`
}

// List returns the wallet and marks it read.
func (h *CouponHandler) List(c echo.Context) error {
	coupons, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]couponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		out = append(out, couponResponse{
			ID:             coupon.ID,
			StoreName:      coupon.StoreName,
			DiscountAmount: coupon.DiscountAmount,
			ExpiresAt:      coupon.ExpiresAt.Format(time.RFC3339),
			ImageURL:       coupon.ImageURL,
		})
	}

	return response.Success(c, http.StatusOK, out)
}

// Unread reports whether the wallet holds coupons the user has not seen.
func (h *CouponHandler) Unread(c echo.Context) error {
	unread, err := h.uc.Unread(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"unread": unread})
}

// RedemptionQR streams the PNG QR code presented at the store.
func (h *CouponHandler) RedemptionQR(c echo.Context) error {
	couponID, err := strconv.ParseInt(c.Param("couponId"), 10, 64)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("coupon id must be numeric")
	}

	png, err := h.uc.RedemptionQR(c.Request().Context(), couponID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
