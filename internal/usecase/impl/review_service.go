package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "gachigage/internal/delivery/context"
	"gachigage/internal/domain/entity"
	"gachigage/internal/domain/service"
	"gachigage/internal/usecase"

	"github.com/pkg/errors"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	gateway service.BackendGateway
	logger  *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(gateway service.BackendGateway, logger *slog.Logger) usecase.ReviewUsecase {
	return &reviewService{gateway: gateway, logger: logger}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create posts a review for a verified mission. Empty content is sent as null,
// never as an empty string.
func (srv *reviewService) Create(ctx context.Context, missionID int64, tags []int, content string) error {
	if err := entity.ValidateReviewTags(tags); err != nil {
		return err
	}

	var body *string
	if trimmed := strings.TrimSpace(content); trimmed != "" {
		body = &trimmed
	}

	if err := srv.gateway.CreateReview(ctx, missionID, tags, body); err != nil {
		return errors.Wrap(err, "failed to create review")
	}
	srv.log(ctx).Info("Review created", slog.Int64("mission_id", missionID), slog.Int("tags", len(tags)))

	return nil
}

// List returns the user's reviews.
func (srv *reviewService) List(ctx context.Context) ([]*entity.Review, error) {
	reviews, err := srv.gateway.Reviews(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// Delete removes one of the user's reviews.
func (srv *reviewService) Delete(ctx context.Context, reviewID int64) error {
	if err := srv.gateway.DeleteReview(ctx, reviewID); err != nil {
		return errors.Wrap(err, "failed to delete review")
	}
	srv.log(ctx).Info("Review deleted", slog.Int64("review_id", reviewID))

	return nil
}

// TagCatalogue exposes the fixed tag list reviews index into.
func (srv *reviewService) TagCatalogue(_ context.Context) []string {
	return entity.MoodTags
}
