package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/core/domain"
)

// RequirePrivilege rejects requests whose principal lacks p. It must run
// after Auth.
func RequirePrivilege(p domain.Privilege) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !session.Can(p) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
