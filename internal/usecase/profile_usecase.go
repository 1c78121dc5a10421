package usecase

import (
	"context"

	"gachigage/internal/domain/entity"
)

// ProfileUsecase defines the interface for the profile tab.
type ProfileUsecase interface {
	// Get returns the user's profile.
	Get(ctx context.Context) (*entity.User, error)

	// UpdateNickname changes the display name (trimmed, 1 to 15 characters).
	UpdateNickname(ctx context.Context, nickname string) error

	// UpdateRegion changes the registered district. Within two months of the
	// previous change it fails with ErrRegionChangeCooldown.
	UpdateRegion(ctx context.Context, sido, gugun string) error
}
