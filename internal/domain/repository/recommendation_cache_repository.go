package repository

import (
	"context"
	"errors"

	"gachigage/internal/domain/entity"
)

// ErrRecommendationCacheNotFound is returned when no submission is cached.
var ErrRecommendationCacheNotFound = errors.New("recommendation cache not found")

// RecommendationCacheRepository persists the latest wizard submission so the
// result screen can redo it and confirm can clear it.
type RecommendationCacheRepository interface {
	// FindLatest retrieves the cached request/result pair.
	FindLatest(ctx context.Context) (*entity.RecommendationCache, error)

	// Save stores the pair, replacing any previous one.
	Save(ctx context.Context, cache *entity.RecommendationCache) error

	// Clear removes the cached pair.
	Clear(ctx context.Context) error
}
