package entity

import (
	"testing"

	domainerrors "gachigage/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidateReviewTags(t *testing.T) {
	assert.NoError(t, ValidateReviewTags([]int{1}))
	assert.NoError(t, ValidateReviewTags([]int{1, 5, 10, 19}))

	assert.ErrorIs(t, ValidateReviewTags(nil), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateReviewTags([]int{1, 2, 3, 4, 5}), domainerrors.ErrReviewTagLimit)
	assert.ErrorIs(t, ValidateReviewTags([]int{0}), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateReviewTags([]int{20}), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateReviewTags([]int{3, 3}), domainerrors.ErrValidationFailed)
}

func TestTagLabels(t *testing.T) {
	// Tags are 1-based indices into the mood catalogue.
	assert.Equal(t, []string{"혼밥 하기 편해요", "시끌벅적해요"}, TagLabels([]int{1, 19}))

	// Out-of-range indices are skipped rather than panicking.
	assert.Equal(t, []string{"데이트하기 좋아요"}, TagLabels([]int{0, 2, 99}))
}
