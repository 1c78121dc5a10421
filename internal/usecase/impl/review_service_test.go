package impl

import (
	"context"
	"testing"

	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_CreateSendsTrimmedContent(t *testing.T) {
	var gotTags []int
	var gotContent *string
	gateway := &fakeGateway{createReviewFn: func(_ context.Context, missionID int64, tags []int, content *string) error {
		assert.Equal(t, int64(3), missionID)
		gotTags = tags
		gotContent = content
		return nil
	}}
	svc := NewReviewService(gateway, discardLogger())

	require.NoError(t, svc.Create(context.Background(), 3, []int{1, 4}, "  맛있어요  "))
	assert.Equal(t, []int{1, 4}, gotTags)
	require.NotNil(t, gotContent)
	assert.Equal(t, "맛있어요", *gotContent)
}

func TestReviewService_CreateEmptyContentIsNull(t *testing.T) {
	var gotContent *string
	gateway := &fakeGateway{createReviewFn: func(_ context.Context, _ int64, _ []int, content *string) error {
		gotContent = content
		return nil
	}}
	svc := NewReviewService(gateway, discardLogger())

	require.NoError(t, svc.Create(context.Background(), 3, []int{2}, "   "))
	assert.Nil(t, gotContent)
}

func TestReviewService_CreateValidatesTags(t *testing.T) {
	gateway := &fakeGateway{createReviewFn: func(context.Context, int64, []int, *string) error {
		t.Fatal("backend must not be called on invalid tags")
		return nil
	}}
	svc := NewReviewService(gateway, discardLogger())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Create(ctx, 3, nil, ""), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, svc.Create(ctx, 3, []int{1, 2, 3, 4, 5}, ""), domainerrors.ErrReviewTagLimit)
	assert.ErrorIs(t, svc.Create(ctx, 3, []int{0}, ""), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, svc.Create(ctx, 3, []int{len(entity.MoodTags) + 1}, ""), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, svc.Create(ctx, 3, []int{2, 2}, ""), domainerrors.ErrValidationFailed)
}

func TestReviewService_DeletePassesThrough(t *testing.T) {
	gateway := &fakeGateway{deleteReviewFn: func(_ context.Context, reviewID int64) error {
		if reviewID != 9 {
			return domainerrors.ErrReviewNotFound
		}
		return nil
	}}
	svc := NewReviewService(gateway, discardLogger())

	require.NoError(t, svc.Delete(context.Background(), 9))
	assert.ErrorIs(t, svc.Delete(context.Background(), 10), domainerrors.ErrReviewNotFound)
}

func TestReviewService_TagCatalogueMatchesMoods(t *testing.T) {
	svc := NewReviewService(&fakeGateway{}, discardLogger())

	catalogue := svc.TagCatalogue(context.Background())
	assert.Equal(t, entity.MoodTags, catalogue)
}
