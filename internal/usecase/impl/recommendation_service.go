package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "gachigage/internal/delivery/context"
	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/domain/service"
	"gachigage/internal/usecase"

	"github.com/pkg/errors"
)

// recommendationService implements the RecommendationUsecase interface. The
// in-flight wizard draft is ephemeral by design: it lives in memory and is
// discarded on restart, while the submitted request/result pair is persisted
// so redo and confirm survive.
type recommendationService struct {
	gateway service.BackendGateway
	cache   repository.RecommendationCacheRepository
	logger  *slog.Logger

	mu    sync.Mutex
	draft *entity.RecommendationDraft
}

// NewRecommendationService is the constructor for recommendationService.
func NewRecommendationService(
	gateway service.BackendGateway,
	cache repository.RecommendationCacheRepository,
	logger *slog.Logger,
) usecase.RecommendationUsecase {
	return &recommendationService{
		gateway: gateway,
		cache:   cache,
		logger:  logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *recommendationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartWizard discards any in-flight draft and opens a fresh one.
func (srv *recommendationService) StartWizard(ctx context.Context) (*entity.RecommendationDraft, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.draft = entity.NewRecommendationDraft()
	srv.log(ctx).Debug("Recommendation wizard started")

	return srv.snapshotLocked(), nil
}

// Draft returns the in-flight wizard draft.
func (srv *recommendationService) Draft(_ context.Context) (*entity.RecommendationDraft, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.draft == nil {
		return nil, domainerrors.ErrWizardStateInvalid.WithDetails("no wizard in progress")
	}

	return srv.snapshotLocked(), nil
}

// SelectRegion records the neighborhood choice.
func (srv *recommendationService) SelectRegion(ctx context.Context, neighborhood string) (*entity.RecommendationDraft, error) {
	return srv.advance(ctx, func(draft *entity.RecommendationDraft) error {
		return draft.SelectRegion(neighborhood)
	})
}

// SelectCategory records the category choice.
func (srv *recommendationService) SelectCategory(ctx context.Context, category string) (*entity.RecommendationDraft, error) {
	return srv.advance(ctx, func(draft *entity.RecommendationDraft) error {
		return draft.SelectCategory(category)
	})
}

// ToggleMood adds or removes a mood tag.
func (srv *recommendationService) ToggleMood(ctx context.Context, mood string) (*entity.RecommendationDraft, error) {
	return srv.advance(ctx, func(draft *entity.RecommendationDraft) error {
		return draft.ToggleMood(mood)
	})
}

// ConfirmMoods closes the mood step.
func (srv *recommendationService) ConfirmMoods(ctx context.Context) (*entity.RecommendationDraft, error) {
	return srv.advance(ctx, func(draft *entity.RecommendationDraft) error {
		return draft.ConfirmMoods()
	})
}

// advance applies one wizard transition under the draft lock.
func (srv *recommendationService) advance(_ context.Context, op func(*entity.RecommendationDraft) error) (*entity.RecommendationDraft, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.draft == nil {
		return nil, domainerrors.ErrWizardStateInvalid.WithDetails("no wizard in progress")
	}
	if err := op(srv.draft); err != nil {
		return nil, err
	}

	return srv.snapshotLocked(), nil
}

// Submit completes the duplicate step, sends the assembled request and caches
// the request/result pair. On an empty result the request is still cached so
// the no-result screen's restart can redo it.
func (srv *recommendationService) Submit(ctx context.Context, allowDuplicates, withWeather bool) (*entity.RecommendationResult, error) {
	srv.mu.Lock()
	if srv.draft == nil {
		srv.mu.Unlock()

		return nil, domainerrors.ErrWizardStateInvalid.WithDetails("no wizard in progress")
	}
	request, err := srv.draft.SetDuplicatePolicy(allowDuplicates)
	if err != nil {
		srv.mu.Unlock()

		return nil, err
	}
	srv.draft = nil
	srv.mu.Unlock()

	result, err := srv.gateway.RequestRecommendation(ctx, *request, withWeather)
	if err != nil {
		if errors.Is(err, domainerrors.ErrRecommendationEmpty) {
			if cacheErr := srv.cache.Save(ctx, &entity.RecommendationCache{
				Request:   *request,
				CreatedAt: time.Now(),
			}); cacheErr != nil {
				srv.log(ctx).Error("Failed to cache empty-result request", slog.Any("error", cacheErr))
			}
		}

		return nil, errors.Wrap(err, "failed to request recommendation")
	}

	if err := srv.cache.Save(ctx, &entity.RecommendationCache{
		Request:   *request,
		Result:    *result,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to cache recommendation")
	}
	srv.log(ctx).Info("Recommendation received", slog.Int("stores", len(result.Stores)))

	return result, nil
}

// Redo resubmits the cached request verbatim and refreshes the cached result.
func (srv *recommendationService) Redo(ctx context.Context) (*entity.RecommendationResult, error) {
	cached, err := srv.cache.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrRecommendationCacheNotFound) {
			return nil, domainerrors.ErrRecommendationCacheEmpty
		}

		return nil, errors.Wrap(err, "failed to load cached request")
	}

	result, err := srv.gateway.RequestRecommendation(ctx, cached.Request, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to redo recommendation")
	}

	if err := srv.cache.Save(ctx, &entity.RecommendationCache{
		Request:   cached.Request,
		Result:    *result,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to cache recommendation")
	}

	return result, nil
}

// Confirm saves the cached result as today's pick and clears the cache.
func (srv *recommendationService) Confirm(ctx context.Context) error {
	cached, err := srv.cache.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrRecommendationCacheNotFound) {
			return domainerrors.ErrRecommendationCacheEmpty
		}

		return errors.Wrap(err, "failed to load cached result")
	}
	if len(cached.Result.Stores) == 0 {
		return domainerrors.ErrRecommendationCacheEmpty.WithDetails("no result to confirm")
	}

	if err := srv.gateway.SaveRecommendation(ctx, cached.Result); err != nil {
		return errors.Wrap(err, "failed to save recommendation")
	}
	if err := srv.cache.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear recommendation cache")
	}
	srv.log(ctx).Info("Recommendation confirmed")

	return nil
}

// Home returns today's confirmed stores and the past history.
func (srv *recommendationService) Home(ctx context.Context) (*entity.RecommendationHome, error) {
	home, err := srv.gateway.RecommendationHome(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recommendation home")
	}

	return home, nil
}

// Neighborhoods lists the selectable neighborhoods of the user's district.
func (srv *recommendationService) Neighborhoods(ctx context.Context) ([]string, error) {
	user, err := srv.gateway.FetchUser(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}

	neighborhoods, ok := entity.Neighborhoods[user.Gugun]
	if !ok {
		return nil, domainerrors.ErrNotFound.WithDetails("no neighborhoods for " + user.Gugun)
	}

	return neighborhoods, nil
}

// Categories exposes the fixed category catalogue.
func (srv *recommendationService) Categories(_ context.Context) []string {
	return entity.StoreCategories
}

// Moods exposes the fixed mood catalogue.
func (srv *recommendationService) Moods(_ context.Context) []string {
	return entity.MoodTags
}

// snapshotLocked copies the draft so callers cannot mutate wizard state
// without going through a transition.
func (srv *recommendationService) snapshotLocked() *entity.RecommendationDraft {
	copied := *srv.draft
	copied.Neighborhoods = append([]string(nil), srv.draft.Neighborhoods...)
	copied.Moods = append([]string(nil), srv.draft.Moods...)

	return &copied
}
