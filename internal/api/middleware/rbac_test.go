package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/core/domain"
)

func runRequire(t *testing.T, p domain.Privilege, session *domain.Session) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(SessionKey, *session)
	}

	called := false
	handler := RequirePrivilege(p)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRequirePrivilege_Allows(t *testing.T) {
	cases := []struct {
		role domain.Role
		priv domain.Privilege
	}{
		{domain.RoleAdmin, domain.PrivApproveContent},
		{domain.RoleOwner, domain.PrivManageUsers},
		{domain.RoleUser, domain.PrivSubmitBusiness},
	}
	for _, tc := range cases {
		rec, called := runRequire(t, tc.priv, &domain.Session{UserID: 1, Role: tc.role})
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("%s/%s: expected pass-through, got %d", tc.role, tc.priv, rec.Code)
		}
	}
}

func TestRequirePrivilege_Forbids(t *testing.T) {
	cases := []struct {
		role domain.Role
		priv domain.Privilege
	}{
		{domain.RoleUser, domain.PrivApproveContent},
		{domain.RoleAdmin, domain.PrivManageUsers},
		{domain.RoleAdmin, domain.PrivSubmitMeeting},
	}
	for _, tc := range cases {
		rec, called := runRequire(t, tc.priv, &domain.Session{UserID: 1, Role: tc.role})
		if called || rec.Code != http.StatusForbidden {
			t.Fatalf("%s/%s: expected 403, got %d", tc.role, tc.priv, rec.Code)
		}
	}
}

func TestRequirePrivilege_NoSession(t *testing.T) {
	rec, called := runRequire(t, domain.PrivViewPending, nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
