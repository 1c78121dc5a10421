package impl

import (
	"context"
	"testing"

	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateNicknameTrims(t *testing.T) {
	var sent string
	gateway := &fakeGateway{updateNicknameFn: func(_ context.Context, nickname string) error {
		sent = nickname
		return nil
	}}
	svc := NewProfileService(gateway, discardLogger())

	require.NoError(t, svc.UpdateNickname(context.Background(), "  새닉네임  "))
	assert.Equal(t, "새닉네임", sent)
}

func TestProfileService_UpdateNicknameValidation(t *testing.T) {
	gateway := &fakeGateway{updateNicknameFn: func(context.Context, string) error {
		t.Fatal("backend must not be called on invalid nickname")
		return nil
	}}
	svc := NewProfileService(gateway, discardLogger())
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateNickname(ctx, "   "), domainerrors.ErrNicknameInvalid)
	assert.ErrorIs(t, svc.UpdateNickname(ctx, "가나다라마바사아자차카타파하가나"), domainerrors.ErrNicknameInvalid)

	// 15 characters is the upper bound, inclusive.
	gateway.updateNicknameFn = func(context.Context, string) error { return nil }
	assert.NoError(t, svc.UpdateNickname(ctx, "가나다라마바사아자차카타파하가"))
}

func TestProfileService_UpdateRegionCooldownSurfaces(t *testing.T) {
	gateway := &fakeGateway{updateRegionFn: func(context.Context, string, string) error {
		return domainerrors.ErrRegionChangeCooldown
	}}
	svc := NewProfileService(gateway, discardLogger())

	err := svc.UpdateRegion(context.Background(), "서울", "노원구")
	assert.ErrorIs(t, err, domainerrors.ErrRegionChangeCooldown)
}

func TestProfileService_UpdateRegionRejectsUnknown(t *testing.T) {
	gateway := &fakeGateway{updateRegionFn: func(context.Context, string, string) error {
		t.Fatal("backend must not be called on unknown region")
		return nil
	}}
	svc := NewProfileService(gateway, discardLogger())

	err := svc.UpdateRegion(context.Background(), "부산", "해운대구")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProfileService_Get(t *testing.T) {
	gateway := &fakeGateway{fetchUserFn: func(context.Context) (*entity.User, error) {
		return &entity.User{Username: "테스터", Sido: "서울", Gugun: "노원구"}, nil
	}}
	svc := NewProfileService(gateway, discardLogger())

	user, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "노원구", user.Gugun)
}
