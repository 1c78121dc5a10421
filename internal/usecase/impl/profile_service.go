package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "gachigage/internal/delivery/context"
	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/service"
	"gachigage/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	gateway service.BackendGateway
	logger  *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(gateway service.BackendGateway, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{gateway: gateway, logger: logger}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Get returns the user's profile.
func (srv *profileService) Get(ctx context.Context) (*entity.User, error) {
	user, err := srv.gateway.FetchUser(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateNickname changes the display name. The value is trimmed before
// validation; 1 to 15 characters after trimming.
func (srv *profileService) UpdateNickname(ctx context.Context, nickname string) error {
	trimmed := strings.TrimSpace(nickname)
	if length := utf8.RuneCountInString(trimmed); length < 1 || length > entity.NicknameMaxLen {
		return domainerrors.ErrNicknameInvalid
	}

	if err := srv.gateway.UpdateNickname(ctx, trimmed); err != nil {
		return errors.Wrap(err, "failed to update nickname")
	}
	srv.log(ctx).Info("Nickname updated")

	return nil
}

// UpdateRegion changes the registered district. The two-month cooldown is
// enforced upstream; the gateway maps the rejection to ErrRegionChangeCooldown
// so it surfaces distinctly from generic failures.
func (srv *profileService) UpdateRegion(ctx context.Context, sido, gugun string) error {
	if !entity.ValidRegion(sido, gugun) {
		return domainerrors.ErrValidationFailed.WithDetails("unknown region: " + sido + " " + gugun)
	}

	if err := srv.gateway.UpdateRegion(ctx, sido, gugun); err != nil {
		return errors.Wrap(err, "failed to update region")
	}
	srv.log(ctx).Info("Region updated", slog.String("gugun", gugun))

	return nil
}
