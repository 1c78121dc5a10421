package entity

import (
	"testing"

	domainerrors "gachigage/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationDraft_StepOrder(t *testing.T) {
	draft := NewRecommendationDraft()
	assert.Equal(t, StepRegion, draft.Step)

	require.NoError(t, draft.SelectRegion("상계동"))
	assert.Equal(t, StepCategory, draft.Step)
	assert.Equal(t, []string{"상계동"}, draft.Neighborhoods)

	require.NoError(t, draft.SelectCategory("커피 전문점"))
	require.NoError(t, draft.ToggleMood("조용해요"))
	require.NoError(t, draft.ConfirmMoods())

	req, err := draft.SetDuplicatePolicy(true)
	require.NoError(t, err)
	assert.Equal(t, StepSubmitted, draft.Step)
	assert.Equal(t, []string{"상계동"}, req.Region)
	assert.Equal(t, "커피 전문점", req.PlaceCategory)
	assert.Equal(t, []string{"조용해요"}, req.PlaceMood)
	assert.True(t, req.Duplicate)
}

func TestRecommendationDraft_OutOfOrder(t *testing.T) {
	draft := NewRecommendationDraft()

	assert.ErrorIs(t, draft.SelectCategory("한식당"), domainerrors.ErrWizardStateInvalid)
	assert.ErrorIs(t, draft.ToggleMood("조용해요"), domainerrors.ErrWizardStateInvalid)
	assert.ErrorIs(t, draft.ConfirmMoods(), domainerrors.ErrWizardStateInvalid)
	_, err := draft.SetDuplicatePolicy(false)
	assert.ErrorIs(t, err, domainerrors.ErrWizardStateInvalid)

	// Re-selecting a finished step is rejected too.
	require.NoError(t, draft.SelectRegion("상계동"))
	assert.ErrorIs(t, draft.SelectRegion("중계동"), domainerrors.ErrWizardStateInvalid)
}

func TestRecommendationDraft_Validation(t *testing.T) {
	draft := NewRecommendationDraft()
	assert.ErrorIs(t, draft.SelectRegion(""), domainerrors.ErrValidationFailed)

	require.NoError(t, draft.SelectRegion("상계동"))
	assert.ErrorIs(t, draft.SelectCategory("노래방"), domainerrors.ErrValidationFailed)

	require.NoError(t, draft.SelectCategory("분식집"))
	assert.ErrorIs(t, draft.ToggleMood("이상한 분위기"), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, draft.ConfirmMoods(), domainerrors.ErrValidationFailed)
}

func TestRecommendationDraft_MoodToggleAndLimit(t *testing.T) {
	draft := NewRecommendationDraft()
	require.NoError(t, draft.SelectRegion("상계동"))
	require.NoError(t, draft.SelectCategory("한식당"))

	for _, mood := range []string{"조용해요", "아늑해요", "뷰가 좋아요"} {
		require.NoError(t, draft.ToggleMood(mood))
	}
	assert.ErrorIs(t, draft.ToggleMood("트렌디해요"), domainerrors.ErrMoodLimitExceeded)

	// Toggling a selected tag removes it even at the limit.
	require.NoError(t, draft.ToggleMood("조용해요"))
	assert.Equal(t, []string{"아늑해요", "뷰가 좋아요"}, draft.Moods)
	require.NoError(t, draft.ToggleMood("트렌디해요"))
}

func TestCatalogues(t *testing.T) {
	assert.Len(t, StoreCategories, 11)
	assert.Len(t, MoodTags, 19)
	assert.True(t, ValidCategory("제과점·베이커리"))
	assert.False(t, ValidCategory("편의점"))
	assert.True(t, ValidMood("반려동물과 함께"))
	assert.False(t, ValidMood("주차가 편해요"))
}
