// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	deliverycontext "gachigage/internal/delivery/context"
	"gachigage/internal/domain/entity"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/domain/service"
	"gachigage/internal/usecase"

	"github.com/pkg/errors"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9]{6,12}$`)

// authService implements the AuthUsecase interface.
type authService struct {
	gateway  service.BackendGateway
	sessions repository.SessionRepository
	logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	gateway service.BackendGateway,
	sessions repository.SessionRepository,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		gateway:  gateway,
		sessions: sessions,
		logger:   logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CheckIdentifier reports whether the identifier is still available.
func (srv *authService) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	if !identifierRe.MatchString(identifier) {
		return false, domainerrors.ErrIdentifierInvalid
	}

	available, err := srv.gateway.CheckIdentifier(ctx, identifier)
	if err != nil {
		return false, errors.Wrap(err, "failed to check identifier")
	}

	return available, nil
}

// Signup validates the wizard input and creates the account upstream.
func (srv *authService) Signup(ctx context.Context, input usecase.SignupInput) error {
	nickname, err := validateSignup(input)
	if err != nil {
		return err
	}

	err = srv.gateway.Signup(ctx, service.SignupInput{
		Identifier:     input.Identifier,
		Password:       input.Password,
		Username:       nickname,
		Sido:           input.Sido,
		Gugun:          input.Gugun,
		MarketingAgree: input.MarketingAgree,
	})
	if err != nil {
		srv.log(ctx).Error("Signup failed", slog.Any("error", err))

		return errors.Wrap(err, "failed to sign up")
	}
	srv.log(ctx).Info("Account created", slog.String("gugun", input.Gugun))

	return nil
}

// Login exchanges credentials for a token pair and persists the session.
func (srv *authService) Login(ctx context.Context, identifier, password string) (*entity.Session, error) {
	if identifier == "" || password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("identifier and password are required")
	}

	out, err := srv.gateway.Login(ctx, identifier, password)
	if err != nil {
		srv.log(ctx).Warn("Login rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to log in")
	}

	session := &entity.Session{
		UserID:       out.UserID,
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}
	if err := srv.sessions.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}
	srv.log(ctx).Info("Logged in", slog.Int64("user_id", out.UserID))

	return session, nil
}

// Logout clears the local session. The backend keeps no session state worth
// revoking, so no upstream call is made.
func (srv *authService) Logout(ctx context.Context) error {
	if err := srv.sessions.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}
	srv.log(ctx).Info("Logged out")

	return nil
}

// Session returns the persisted session, or ErrAuthRequired when none exists.
func (srv *authService) Session(ctx context.Context) (*entity.Session, error) {
	session, err := srv.sessions.Find(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrAuthRequired
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	return session, nil
}

// validateSignup checks the signup wizard values and returns the trimmed
// nickname.
func validateSignup(input usecase.SignupInput) (string, error) {
	if !identifierRe.MatchString(input.Identifier) {
		return "", domainerrors.ErrIdentifierInvalid
	}
	if pwLen := utf8.RuneCountInString(input.Password); pwLen < entity.PasswordMinLen || pwLen > entity.PasswordMaxLen {
		return "", domainerrors.ErrPasswordInvalid
	}

	nickname := strings.TrimSpace(input.Nickname)
	if nickLen := utf8.RuneCountInString(nickname); nickLen < 1 || nickLen > entity.NicknameMaxLen {
		return "", domainerrors.ErrNicknameInvalid
	}

	if !entity.ValidRegion(input.Sido, input.Gugun) {
		return "", domainerrors.ErrValidationFailed.WithDetails("unknown region: " + input.Sido + " " + input.Gugun)
	}

	return nickname, nil
}
