package impl

import (
	"context"
	"testing"

	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissionService_Board(t *testing.T) {
	gateway := &fakeGateway{missionBoardFn: func(context.Context) (*entity.MissionBoard, error) {
		return &entity.MissionBoard{
			Gugun:  "노원구",
			Region: entity.Ranking{Rank: 3, Score: 1200},
			Me:     entity.Ranking{Rank: 18, Score: 90},
			Missions: []entity.Mission{
				{ID: 1, Title: "이번 주 만두 미션", Score: 50, Special: true},
				{ID: 2, Title: "동네 카페 방문", Score: 30, Verified: true},
			},
		}, nil
	}}
	svc := NewMissionService(gateway, discardLogger())

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "노원구", board.Gugun)
	assert.Equal(t, 3, board.Region.Rank)
	assert.Len(t, board.Missions, 2)
	assert.True(t, board.Missions[1].Verified)
}

func TestMissionService_BoardRequiresSession(t *testing.T) {
	gateway := &fakeGateway{missionBoardFn: func(context.Context) (*entity.MissionBoard, error) {
		return nil, domainerrors.ErrAuthRequired
	}}
	svc := NewMissionService(gateway, discardLogger())

	_, err := svc.Board(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrAuthRequired)
}
