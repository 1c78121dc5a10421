package service

// QRCodeService defines the interface for coupon redemption QR codes.
type QRCodeService interface {
	// GenerateCouponQR renders the redemption QR code PNG for a coupon.
	GenerateCouponQR(couponID int64) ([]byte, error)

	// ParseCouponQR parses QR code data and returns the coupon id.
	ParseCouponQR(qrData string) (int64, error)
}
