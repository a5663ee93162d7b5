package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/api/middleware"
	"github.com/kapurocks/directory/internal/core/domain"
)

// ctxSession returns the principal injected by the Auth middleware. Its
// absence means the route was registered without Auth: reject with 401.
func ctxSession(c echo.Context) (domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return s, nil
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
