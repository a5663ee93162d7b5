package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes, logs anything unexpected and renders
// {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// statusOf lists the domain errors with a fixed transport status. Messages
// of the last group carry caller-facing detail and are passed through.
var statusOf = []struct {
	err    error
	code   int
	detail bool
}{
	{domain.ErrDuplicateAccount, http.StatusConflict, false},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, false},
	{domain.ErrInvalidCode, http.StatusUnauthorized, false},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, false},
	{domain.ErrLevelAlreadyApproved, http.StatusConflict, false},
	{domain.ErrItemRejected, http.StatusConflict, false},
	{domain.ErrPrivilegeDenied, http.StatusForbidden, false},
	{domain.ErrOwnerProtected, http.StatusForbidden, false},
	{domain.ErrInvalidResetToken, http.StatusBadRequest, false},
	{domain.ErrNotFound, http.StatusNotFound, true},
	{domain.ErrInvalidLevel, http.StatusUnprocessableEntity, true},
	{domain.ErrInvalidStatus, http.StatusUnprocessableEntity, true},
	{domain.ErrInvalidInput, http.StatusBadRequest, true},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range statusOf {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.detail {
			return m.code, err.Error()
		}
		return m.code, m.err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
