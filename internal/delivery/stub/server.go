// Package stub is a bundled stand-in for the remote 가치가게 backend. It
// speaks the same wire format the upstream client expects and keeps its state
// in stub_* tables of the local sqlite file, so the whole app runs offline.
package stub

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"gachigage/config"
	"gachigage/internal/delivery"
	"gachigage/internal/domain/lifecycle"
	"gachigage/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const defaultPort = 8081

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
	Tokens service.TokenService
	Hasher service.PasswordHasher
}

type stubServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewServer wires the stub backend. When the stub is disabled in config the
// returned delivery is a no-op.
func NewServer(params Params) (delivery.Delivery, error) {
	srv := &stubServer{
		cfg:    params.Config,
		logger: params.Logger.With(slog.String("component", "stub")),
	}
	if !enabled(params.Config) {
		return srv, nil
	}

	h := &handlers{
		db:     params.DB,
		tokens: params.Tokens,
		hasher: params.Hasher,
		cfg:    params.Config,
		logger: srv.logger,
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Use(middleware.Recover())
	echoServer.HTTPErrorHandler = handleError

	registerRoutes(echoServer, h)

	srv.server = echoServer

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return seedFixtures(ctx, params.DB)
		},
		OnStop: srv.stop,
	})

	return srv, nil
}

func enabled(cfg *config.Config) bool {
	return cfg.Stub != nil && cfg.Stub.Enabled
}

func (s *stubServer) Serve(ctx context.Context) error {
	if s.server == nil {
		s.logger.Info("Stub backend disabled")

		return nil
	}

	port := s.cfg.Stub.Port
	if port == 0 {
		port = defaultPort
	}
	hostPort := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	s.logger.Info("Starting stub backend", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve stub backend")
	}

	return nil
}

func (s *stubServer) stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down stub backend")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

func registerRoutes(e *echo.Echo, h *handlers) {
	e.POST("/user/signup", h.signup)
	e.POST("/user/check", h.checkIdentifier)
	e.POST("/user/login", h.login)
	e.GET("/user/refresh", h.refresh)

	authed := e.Group("", h.authenticate)
	authed.GET("/user", h.user)
	authed.PATCH("/user/update/nick", h.updateNickname)
	authed.PATCH("/user/update/region", h.updateRegion)

	authed.GET("/recommend", h.recommendationHome)
	authed.POST("/recommend/today", h.recommendToday)
	authed.POST("/recommend/save", h.recommendSave)

	authed.GET("/mission", h.missionBoard)
	authed.POST("/mission/check", h.missionCheck)
	authed.POST("/mission/review", h.createReview)
	authed.GET("/mission/review", h.listReviews)
	authed.DELETE("/mission/review/delete/:reviewId", h.deleteReview)

	authed.GET("/coupon", h.coupons)
}

// apiError is a stub response carrying the backend's plain {message} shape.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func newAPIError(status int, message string) error {
	return &apiError{status: status, message: message}
}

func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var stubErr *apiError
	if errors.As(err, &stubErr) {
		_ = c.JSON(stubErr.status, map[string]string{"message": stubErr.message})

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, _ := httpErr.Message.(string)
		_ = c.JSON(httpErr.Code, map[string]string{"message": message})

		return
	}

	_ = c.JSON(http.StatusInternalServerError, map[string]string{"message": "일시적인 오류가 발생했습니다."})
}

const userIDKey = "stubUserID"

// authenticate validates the bearer access token and stores the user id on
// the request context.
func (h *handlers) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			return newAPIError(http.StatusUnauthorized, "인증 토큰이 필요합니다.")
		}

		userID, err := h.tokens.ValidateAccess(token)
		if err != nil {
			return newAPIError(http.StatusUnauthorized, "인증 토큰이 유효하지 않습니다.")
		}

		c.Set(userIDKey, userID)

		return next(c)
	}
}

func currentUserID(c echo.Context) int64 {
	userID, _ := c.Get(userIDKey).(int64)

	return userID
}
