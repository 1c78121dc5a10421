package sqlite

import (
	"context"
	"encoding/json"

	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cacheRowID keys the single cached submission row.
const cacheRowID = 1

// recommendationCacheRepository implements the repository.RecommendationCacheRepository interface using GORM.
type recommendationCacheRepository struct {
	db *gorm.DB
}

// NewRecommendationCacheRepository is the constructor for recommendationCacheRepository.
func NewRecommendationCacheRepository(db *gorm.DB) repository.RecommendationCacheRepository {
	return &recommendationCacheRepository{db: db}
}

// FindLatest retrieves the cached request/result pair.
func (repo *recommendationCacheRepository) FindLatest(ctx context.Context) (*entity.RecommendationCache, error) {
	var cacheM model.RecommendationCacheModel
	err := repo.db.WithContext(ctx).First(&cacheM, cacheRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecommendationCacheNotFound
		}

		return nil, errors.Wrap(err, "failed to find recommendation cache")
	}

	cache := entity.RecommendationCache{CreatedAt: cacheM.CreatedAt}
	if err := json.Unmarshal([]byte(cacheM.Request), &cache.Request); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached request")
	}
	if err := json.Unmarshal([]byte(cacheM.Result), &cache.Result); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached result")
	}

	return &cache, nil
}

// Save stores the pair, replacing any previous one.
func (repo *recommendationCacheRepository) Save(ctx context.Context, cache *entity.RecommendationCache) error {
	request, err := json.Marshal(cache.Request)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}
	result, err := json.Marshal(cache.Result)
	if err != nil {
		return errors.Wrap(err, "failed to encode result")
	}

	cacheM := model.RecommendationCacheModel{
		ID:      cacheRowID,
		Request: string(request),
		Result:  string(result),
	}

	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&cacheM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save recommendation cache")
	}

	return nil
}

// Clear removes the cached pair.
func (repo *recommendationCacheRepository) Clear(ctx context.Context) error {
	err := repo.db.WithContext(ctx).Delete(&model.RecommendationCacheModel{}, cacheRowID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear recommendation cache")
	}

	return nil
}
