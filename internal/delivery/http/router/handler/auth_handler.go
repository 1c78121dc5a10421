// Package handler contains the HTTP handlers for the client API.
package handler

import (
	"log/slog"
	"net/http"

	"gachigage/internal/delivery/http/response"
	"gachigage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for account and session handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

type checkIdentifierRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// CheckIdentifier reports whether an identifier is still available.
func (h *AuthHandler) CheckIdentifier(c echo.Context) error {
	var input checkIdentifierRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid identifier check input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	available, err := h.uc.CheckIdentifier(c.Request().Context(), input.Identifier)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"available": available})
}

type signupRequest struct {
	Identifier     string `json:"identifier" validate:"required"`
	Password       string `json:"password" validate:"required"`
	Nickname       string `json:"nickname" validate:"required"`
	Sido           string `json:"sido" validate:"required"`
	Gugun          string `json:"gugun" validate:"required"`
	MarketingAgree *bool  `json:"marketing_agree,omitempty"`
}

// Signup handles the signup wizard submission.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input signupRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	err := h.uc.Signup(c.Request().Context(), usecase.SignupInput{
		Identifier:     input.Identifier,
		Password:       input.Password,
		Nickname:       input.Nickname,
		Sido:           input.Sido,
		Gugun:          input.Gugun,
		MarketingAgree: input.MarketingAgree,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"message": "가입이 완료되었습니다."})
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type sessionResponse struct {
	UserID        int64 `json:"user_id"`
	Authenticated bool  `json:"authenticated"`
}

// Login exchanges credentials for a persisted session.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	session, err := h.uc.Login(c.Request().Context(), input.Identifier, input.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse{
		UserID:        session.UserID,
		Authenticated: session.Authenticated(),
	})
}

// Logout clears the persisted session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// Session returns the persisted session, if any. Tokens never leave the
// server; only the user id and the login state are exposed.
func (h *AuthHandler) Session(c echo.Context) error {
	session, err := h.uc.Session(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse{
		UserID:        session.UserID,
		Authenticated: session.Authenticated(),
	})
}
