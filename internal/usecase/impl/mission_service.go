package impl

import (
	"context"
	"log/slog"

	deliverycontext "gachigage/internal/delivery/context"
	"gachigage/internal/domain/entity"
	"gachigage/internal/domain/service"
	"gachigage/internal/usecase"

	"github.com/pkg/errors"
)

// missionService implements the MissionUsecase interface.
type missionService struct {
	gateway service.BackendGateway
	logger  *slog.Logger
}

// NewMissionService is the constructor for missionService.
func NewMissionService(gateway service.BackendGateway, logger *slog.Logger) usecase.MissionUsecase {
	return &missionService{gateway: gateway, logger: logger}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *missionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Board returns the mission list with the weekly rankings.
func (srv *missionService) Board(ctx context.Context) (*entity.MissionBoard, error) {
	board, err := srv.gateway.MissionBoard(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to load mission board", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load mission board")
	}

	return board, nil
}
