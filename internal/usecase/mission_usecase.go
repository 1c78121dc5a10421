package usecase

import (
	"context"

	"gachigage/internal/domain/entity"
)

// MissionUsecase defines the interface for the mission tab.
type MissionUsecase interface {
	// Board returns the mission list with the weekly district and personal
	// rankings.
	Board(ctx context.Context) (*entity.MissionBoard, error)
}
