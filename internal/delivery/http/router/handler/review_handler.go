package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gachigage/internal/delivery/http/response"
	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for review authoring.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, logger: logger}
}

type createReviewRequest struct {
	MissionID int64  `json:"mission_id" validate:"required"`
	Tags      []int  `json:"tags" validate:"required"`
	Content   string `json:"content"`
}

// Create posts a review for a verified mission.
func (h *ReviewHandler) Create(c echo.Context) error {
	var input createReviewRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid review input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.uc.Create(c.Request().Context(), input.MissionID, input.Tags, input.Content); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"message": "리뷰가 등록되었습니다."})
}

type reviewResponse struct {
	ID        int64    `json:"review_id"`
	MissionID int64    `json:"mission_id"`
	StoreName string   `json:"store_name"`
	Tags      []int    `json:"tags"`
	TagLabels []string `json:"tag_labels"`
	Content   *string  `json:"content"`
	CreatedAt string   `json:"created_at"`
}

// List returns the user's reviews with the tag indices resolved to labels.
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, reviewResponse{
			ID:        review.ID,
			MissionID: review.MissionID,
			StoreName: review.StoreName,
			Tags:      review.Tags,
			TagLabels: entity.TagLabels(review.Tags),
			Content:   review.Content,
			CreatedAt: review.CreatedAt.Format(time.RFC3339),
		})
	}

	return response.Success(c, http.StatusOK, out)
}

// Delete removes one of the user's reviews.
func (h *ReviewHandler) Delete(c echo.Context) error {
	reviewID, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("review id must be numeric")
	}

	if err := h.uc.Delete(c.Request().Context(), reviewID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// Tags exposes the fixed tag catalogue reviews index into.
func (h *ReviewHandler) Tags(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string][]string{"tags": h.uc.TagCatalogue(c.Request().Context())})
}
