package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

// MeHandler serves the signed-in principal's own account.
type MeHandler struct {
	accounts ports.AccountService
	sessions ports.SessionService
	tokens   TokenIssuer
}

func NewMeHandler(accounts ports.AccountService, sessions ports.SessionService, tokens TokenIssuer) *MeHandler {
	return &MeHandler{accounts: accounts, sessions: sessions, tokens: tokens}
}

// Get returns the principal and whether admin review mode is on.
//
// @Summary      Current principal
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *MeHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	on, err := h.sessions.AdminMode(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Session: session, AdminMode: on && session.Can(domain.PrivViewPending)})
}

// Link attaches an email or mobile number to the account and returns a
// token carrying the updated session.
//
// @Summary      Link a sign-in channel
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      linkRequest  true  "Email and/or mobile number"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/me/link [post]
func (h *MeHandler) Link(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req linkRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	updated, err := h.accounts.LinkChannel(c.Request().Context(), session, req.Email, req.Mobile)
	if err != nil {
		return err
	}
	token, err := h.tokens.Issue(updated)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, Session: updated})
}

// SetAdminMode switches the review view on or off.
//
// @Summary      Toggle admin mode
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminModeRequest  true  "Desired state"
// @Success      200   {object}  adminModeResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/me/admin-mode [put]
func (h *MeHandler) SetAdminMode(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req adminModeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.sessions.SetAdminMode(c.Request().Context(), session, *req.Enabled); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminModeResponse{AdminMode: *req.Enabled})
}
