package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/core/domain"
)

// SessionKey is the echo context key holding the request principal.
const SessionKey = "session"

// TokenParser turns a bearer token into the session it was issued for.
type TokenParser interface {
	Parse(raw string) (domain.Session, error)
}

// PrincipalResolver loads the current session projection of an account.
type PrincipalResolver interface {
	Principal(ctx context.Context, userID int64) (domain.Session, error)
}

// Auth validates the bearer token, reloads the account it names and
// injects the resulting session into context. The token only identifies
// the caller; role changes and removals apply to tokens already issued.
func Auth(parser TokenParser, principals PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claimed, err := parser.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			session, err := principals.Principal(c.Request().Context(), claimed.UserID)
			if errors.Is(err, domain.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			}
			if err != nil {
				return err
			}

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// SessionFrom returns the principal set by Auth.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(SessionKey).(domain.Session)
	return s, ok && s.Authenticated()
}
