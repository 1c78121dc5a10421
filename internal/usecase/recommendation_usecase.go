package usecase

import (
	"context"

	"gachigage/internal/domain/entity"
)

// RecommendationUsecase defines the interface for the recommendation wizard
// and the recommendation home tab.
type RecommendationUsecase interface {
	// StartWizard discards any in-flight draft and opens a fresh one at the
	// region step.
	StartWizard(ctx context.Context) (*entity.RecommendationDraft, error)

	// Draft returns the in-flight wizard draft.
	Draft(ctx context.Context) (*entity.RecommendationDraft, error)

	// SelectRegion, SelectCategory, ToggleMood, ConfirmMoods advance the draft
	// through its steps; out-of-order calls fail with ErrWizardStateInvalid.
	SelectRegion(ctx context.Context, neighborhood string) (*entity.RecommendationDraft, error)
	SelectCategory(ctx context.Context, category string) (*entity.RecommendationDraft, error)
	ToggleMood(ctx context.Context, mood string) (*entity.RecommendationDraft, error)
	ConfirmMoods(ctx context.Context) (*entity.RecommendationDraft, error)

	// Submit completes the duplicate step, sends the assembled request and
	// caches the request/result pair for redo.
	Submit(ctx context.Context, allowDuplicates, withWeather bool) (*entity.RecommendationResult, error)

	// Redo resubmits the cached request verbatim.
	Redo(ctx context.Context) (*entity.RecommendationResult, error)

	// Confirm saves the cached result as today's pick and clears the cache.
	Confirm(ctx context.Context) error

	// Home returns today's confirmed stores and the past history.
	Home(ctx context.Context) (*entity.RecommendationHome, error)

	// Neighborhoods lists the selectable neighborhoods of the user's district.
	Neighborhoods(ctx context.Context) ([]string, error)

	// Categories and Moods expose the fixed option catalogues.
	Categories(ctx context.Context) []string
	Moods(ctx context.Context) []string
}
