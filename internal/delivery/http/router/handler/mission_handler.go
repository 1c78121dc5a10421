package handler

import (
	"log/slog"
	"net/http"

	"gachigage/internal/delivery/http/response"
	"gachigage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MissionHandler holds dependencies for the mission tab.
type MissionHandler struct {
	uc     usecase.MissionUsecase
	logger *slog.Logger
}

// NewMissionHandler is the constructor for MissionHandler, injected by Fx.
func NewMissionHandler(uc usecase.MissionUsecase, logger *slog.Logger) *MissionHandler {
	return &MissionHandler{uc: uc, logger: logger}
}

type rankingResponse struct {
	Rank  int `json:"rank"`
	Score int `json:"score"`
}

type missionResponse struct {
	ID       int64  `json:"mission_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Score    int    `json:"score"`
	Special  bool   `json:"special"`
	Verified bool   `json:"verified"`
}

// Board returns the mission list with the weekly rankings.
func (h *MissionHandler) Board(c echo.Context) error {
	board, err := h.uc.Board(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	missions := make([]missionResponse, 0, len(board.Missions))
	for _, mission := range board.Missions {
		missions = append(missions, missionResponse{
			ID:       mission.ID,
			Title:    mission.Title,
			Body:     mission.Body,
			Score:    mission.Score,
			Special:  mission.Special,
			Verified: mission.Verified,
		})
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"gugun":    board.Gugun,
		"region":   rankingResponse{Rank: board.Region.Rank, Score: board.Region.Score},
		"my":       rankingResponse{Rank: board.Me.Rank, Score: board.Me.Score},
		"missions": missions,
	})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
