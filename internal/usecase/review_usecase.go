package usecase

import (
	"context"

	"gachigage/internal/domain/entity"
)

// ReviewUsecase defines the interface for review authoring.
type ReviewUsecase interface {
	// Create posts a review for a verified mission. Tags are 1-based indices
	// into the tag catalogue; empty content is sent as null.
	Create(ctx context.Context, missionID int64, tags []int, content string) error

	// List returns the user's reviews.
	List(ctx context.Context) ([]*entity.Review, error)

	// Delete removes one of the user's reviews.
	Delete(ctx context.Context, reviewID int64) error

	// TagCatalogue exposes the fixed tag list reviews index into.
	TagCatalogue(ctx context.Context) []string
}
