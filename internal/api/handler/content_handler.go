package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/api/metrics"
	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

// ContentHandler serves the public directory and the review queue.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// --- Public listings ---

// ListBusinesses handles GET /v1/businesses.
//
// @Summary      List published businesses
// @Tags         directory
// @Produce      json
// @Param        category  query     string  false  "Category, or all"
// @Param        q         query     string  false  "Search over name, owner and description"
// @Success      200       {array}   domain.Business
// @Router       /v1/businesses [get]
func (h *ContentHandler) ListBusinesses(c echo.Context) error {
	items, err := h.service.ListBusinesses(c.Request().Context(), ports.BusinessFilter{
		Category: c.QueryParam("category"),
		Query:    c.QueryParam("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListMeetings handles GET /v1/meetings.
//
// @Summary      List published meetings
// @Tags         directory
// @Produce      json
// @Param        view  query     string  false  "upcoming, weekly, monthly, past or all"
// @Param        type  query     string  false  "Meeting type"
// @Param        from  query     string  false  "Earliest date (YYYY-MM-DD)"
// @Param        to    query     string  false  "Latest date (YYYY-MM-DD)"
// @Success      200   {array}   domain.Meeting
// @Failure      400   {object}  errorResponse
// @Router       /v1/meetings [get]
func (h *ContentHandler) ListMeetings(c echo.Context) error {
	view := c.QueryParam("view")
	if view == "" {
		view = string(ports.MeetingsUpcoming)
	}
	items, err := h.service.ListMeetings(c.Request().Context(), ports.MeetingFilter{
		View: ports.MeetingView(view),
		Type: c.QueryParam("type"),
		From: c.QueryParam("from"),
		To:   c.QueryParam("to"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListAchievements handles GET /v1/achievements.
//
// @Summary      List published achievements
// @Tags         directory
// @Produce      json
// @Success      200  {array}  domain.Achievement
// @Router       /v1/achievements [get]
func (h *ContentHandler) ListAchievements(c echo.Context) error {
	items, err := h.service.ListAchievements(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// --- Submission ---

// SubmitBusiness handles POST /v1/businesses.
//
// @Summary      Submit a business for review
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      businessRequest  true  "Business listing"
// @Success      201   {object}  domain.Business
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/businesses [post]
func (h *ContentHandler) SubmitBusiness(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req businessRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	item, err := h.service.SubmitBusiness(c.Request().Context(), session, toBusiness(req))
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues(string(domain.KindBusiness)).Inc()
	return c.JSON(http.StatusCreated, item)
}

// SubmitMeeting handles POST /v1/meetings.
//
// @Summary      Submit a meeting for review
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      meetingRequest  true  "Meeting"
// @Success      201   {object}  domain.Meeting
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/meetings [post]
func (h *ContentHandler) SubmitMeeting(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req meetingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	item, err := h.service.SubmitMeeting(c.Request().Context(), session, toMeeting(req))
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues(string(domain.KindMeeting)).Inc()
	return c.JSON(http.StatusCreated, item)
}

// SubmitAchievement handles POST /v1/achievements.
//
// @Summary      Submit an achievement for review
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      achievementRequest  true  "Achievement"
// @Success      201   {object}  domain.Achievement
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/achievements [post]
func (h *ContentHandler) SubmitAchievement(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req achievementRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	item, err := h.service.SubmitAchievement(c.Request().Context(), session, toAchievement(req))
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues(string(domain.KindAchievement)).Inc()
	return c.JSON(http.StatusCreated, item)
}

// --- Review ---

// Pending handles GET /v1/admin/pending and GET /v1/admin/pending/:kind.
//
// @Summary      Review queue
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string  false  "businesses, meetings or achievements"
// @Success      200   {object}  pendingResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/pending/{kind} [get]
func (h *ContentHandler) Pending(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if raw := c.Param("kind"); raw != "" {
		kind, err := domain.ParseKind(raw)
		if err != nil {
			return err
		}
		items, err := h.service.ListPending(ctx, session, kind)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, items)
	}

	var resp pendingResponse
	for _, kind := range domain.Kinds() {
		items, err := h.service.ListPending(ctx, session, kind)
		if err != nil {
			return err
		}
		switch kind {
		case domain.KindBusiness:
			resp.Businesses = items
		case domain.KindMeeting:
			resp.Meetings = items
		case domain.KindAchievement:
			resp.Achievements = items
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Approve handles POST /v1/admin/:kind/:id/approve. Without a level the
// next unsigned level is approved.
//
// @Summary      Approve one review level
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string          true   "businesses, meetings or achievements"
// @Param        id    path      int             true   "Item id"
// @Param        body  body      approveRequest  false  "Level 1-3"
// @Success      200   {object}  map[string]any
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/{kind}/{id}/approve [post]
func (h *ContentHandler) Approve(c echo.Context) error {
	session, kind, id, err := reviewTarget(c)
	if err != nil {
		return err
	}
	var req approveRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	item, err := h.service.Approve(c.Request().Context(), session, kind, id, domain.Level(req.Level))
	if err != nil {
		return err
	}
	metrics.ReviewsTotal.WithLabelValues(string(kind), "approve").Inc()
	if item.Workflow().IsPublished() {
		metrics.PublishedTotal.WithLabelValues(string(kind)).Inc()
	}
	return c.JSON(http.StatusOK, item)
}

// Reject handles POST /v1/admin/:kind/:id/reject.
//
// @Summary      Reject an item
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string  true  "businesses, meetings or achievements"
// @Param        id    path      int     true  "Item id"
// @Success      200   {object}  map[string]any
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/{kind}/{id}/reject [post]
func (h *ContentHandler) Reject(c echo.Context) error {
	session, kind, id, err := reviewTarget(c)
	if err != nil {
		return err
	}
	item, err := h.service.Reject(c.Request().Context(), session, kind, id)
	if err != nil {
		return err
	}
	metrics.ReviewsTotal.WithLabelValues(string(kind), "reject").Inc()
	return c.JSON(http.StatusOK, item)
}

// UpdateStatus handles PUT /v1/admin/:kind/:id/status.
//
// @Summary      Override an item's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string         true  "businesses, meetings or achievements"
// @Param        id    path      int            true  "Item id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  map[string]any
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/{kind}/{id}/status [put]
func (h *ContentHandler) UpdateStatus(c echo.Context) error {
	session, kind, id, err := reviewTarget(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	item, err := h.service.UpdateStatus(c.Request().Context(), session, kind, id, domain.Status(req.Status))
	if err != nil {
		return err
	}
	metrics.ReviewsTotal.WithLabelValues(string(kind), "override").Inc()
	return c.JSON(http.StatusOK, item)
}

func reviewTarget(c echo.Context) (domain.Session, domain.Kind, int64, error) {
	session, err := ctxSession(c)
	if err != nil {
		return domain.Session{}, "", 0, err
	}
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		return domain.Session{}, "", 0, err
	}
	id, err := pathID(c)
	if err != nil {
		return domain.Session{}, "", 0, err
	}
	return session, kind, id, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
