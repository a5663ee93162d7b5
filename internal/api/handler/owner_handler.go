package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/api/metrics"
	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

type OwnerHandler struct {
	service ports.OwnerService
}

func NewOwnerHandler(service ports.OwnerService) *OwnerHandler {
	return &OwnerHandler{service: service}
}

// ListUsers handles GET /v1/owner/users.
//
// @Summary      List accounts
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/owner/users [get]
func (h *OwnerHandler) ListUsers(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	users, err := h.service.ListUsers(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Promote handles POST /v1/owner/users/:id/promote.
//
// @Summary      Promote to admin
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/owner/users/{id}/promote [post]
func (h *OwnerHandler) Promote(c echo.Context) error {
	return h.setRole(c, "promote", h.service.Promote)
}

// Demote handles POST /v1/owner/users/:id/demote.
//
// @Summary      Demote to user
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/owner/users/{id}/demote [post]
func (h *OwnerHandler) Demote(c echo.Context) error {
	return h.setRole(c, "demote", h.service.Demote)
}

type roleChange func(ctx context.Context, actor domain.Session, userID int64) (*domain.User, error)

func (h *OwnerHandler) setRole(c echo.Context, action string, change roleChange) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := change(c.Request().Context(), session, id)
	if err != nil {
		return err
	}
	metrics.RoleChangesTotal.WithLabelValues(action).Inc()
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

// Remove handles DELETE /v1/owner/users/:id.
//
// @Summary      Remove an account
// @Tags         owner
// @Security     BearerAuth
// @Param        id   path  int  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/owner/users/{id} [delete]
func (h *OwnerHandler) Remove(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), session, id); err != nil {
		return err
	}
	metrics.RoleChangesTotal.WithLabelValues("remove").Inc()
	return c.NoContent(http.StatusNoContent)
}
