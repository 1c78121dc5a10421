package handler

import (
	"log/slog"
	"net/http"

	"gachigage/internal/delivery/http/response"
	"gachigage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for the profile tab.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, logger: logger}
}

type monthlyScoreResponse struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

// Get returns the user's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	monthly := make([]monthlyScoreResponse, 0, len(user.Monthly))
	for _, score := range user.Monthly {
		monthly = append(monthly, monthlyScoreResponse{Month: score.Month, Score: score.Score})
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"username": user.Username,
		"sido":     user.Sido,
		"gugun":    user.Gugun,
		"type":     user.Type,
		"monthly":  monthly,
	})
}

type updateNicknameRequest struct {
	Nickname string `json:"nickname" validate:"required"`
}

// UpdateNickname changes the display name.
func (h *ProfileHandler) UpdateNickname(c echo.Context) error {
	var input updateNicknameRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid nickname input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.uc.UpdateNickname(c.Request().Context(), input.Nickname); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "닉네임이 변경되었습니다."})
}

type updateRegionRequest struct {
	Sido  string `json:"sido" validate:"required"`
	Gugun string `json:"gugun" validate:"required"`
}

// UpdateRegion changes the registered district.
func (h *ProfileHandler) UpdateRegion(c echo.Context) error {
	var input updateRegionRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid region input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.uc.UpdateRegion(c.Request().Context(), input.Sido, input.Gugun); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "지역이 변경되었습니다."})
}
