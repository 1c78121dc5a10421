package middleware

import (
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionMiddleware gates routes on a persisted login. The client never sends
// tokens itself; a route is authenticated when the local session store holds
// a usable credential pair.
type SessionMiddleware struct {
	sessions repository.SessionRepository
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions repository.SessionRepository) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession rejects the request with ErrAuthRequired when no session is
// persisted. Token expiry is not checked here; the upstream client discovers
// that reactively and answers with ErrSessionExpired.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.sessions.Find(c.Request().Context())
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return domainerrors.ErrAuthRequired
			}

			return errors.Wrap(err, "failed to load session")
		}
		if !session.Authenticated() {
			return domainerrors.ErrAuthRequired
		}

		return next(c)
	}
}
