package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/api/metrics"
	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

// TokenIssuer signs the bearer token returned to a signed-in client.
type TokenIssuer interface {
	Issue(s domain.Session) (string, error)
}

type AuthHandler struct {
	accounts ports.AccountService
	sessions ports.SessionService
	tokens   TokenIssuer
}

func NewAuthHandler(accounts ports.AccountService, sessions ports.SessionService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, tokens: tokens}
}

func (h *AuthHandler) respondSession(c echo.Context, code int, s domain.Session) error {
	token, err := h.tokens.Issue(s)
	if err != nil {
		return err
	}
	return c.JSON(code, authResponse{Token: token, Session: s})
}

// Register creates an account and signs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details; password for gmail, code for mobile"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	session, err := h.accounts.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(req.Channel).Inc()
	return h.respondSession(c, http.StatusCreated, session)
}

// Login authenticates with an email and password or a mobile number and
// one-time code.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	session, err := h.accounts.Authenticate(c.Request().Context(), domain.Channel(req.Channel), req.Identifier, req.Secret)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(req.Channel, "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues(req.Channel, "success").Inc()
	return h.respondSession(c, http.StatusOK, session)
}

// IssueCode sends a one-time code to a mobile number.
//
// @Summary      Send a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpRequest  true  "Mobile number"
// @Success      202   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/otp [post]
func (h *AuthHandler) IssueCode(c echo.Context) error {
	var req otpRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.accounts.IssueCode(c.Request().Context(), req.Mobile); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, statusResponse{Status: "sent"})
}

// Logout ends the installation session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}
	if err := h.sessions.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestReset delivers a single-use reset token to the account's channel.
// Unknown identifiers get the same response as known ones.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      recoverRequest  true  "Email or mobile number"
// @Success      202   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/recover [post]
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req recoverRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.accounts.RequestReset(c.Request().Context(), req.Identifier); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return c.JSON(http.StatusAccepted, statusResponse{Status: "sent"})
}

// RecoverUsername sends the account email to its mobile number.
//
// @Summary      Recover username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      recoverUsernameRequest  true  "Mobile number"
// @Success      202   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/recover/username [post]
func (h *AuthHandler) RecoverUsername(c echo.Context) error {
	var req recoverUsernameRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.accounts.RecoverUsername(c.Request().Context(), req.Mobile); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return c.JSON(http.StatusAccepted, statusResponse{Status: "sent"})
}

// Reset sets a new password with a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Param        body  body      resetRequest  true  "Reset token and new password"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Router       /v1/auth/reset [post]
func (h *AuthHandler) Reset(c echo.Context) error {
	var req resetRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.accounts.ResetCredential(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
