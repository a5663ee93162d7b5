package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kapurocks/directory/internal/api/middleware"
	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
	"github.com/kapurocks/directory/internal/core/service"
)

// ---------------------------------------------------------------------------
// Service stubs: each test sets only the functions it expects to be called.
// ---------------------------------------------------------------------------

type stubAccountService struct {
	registerFn     func(ctx context.Context, in ports.RegisterInput) (domain.Session, error)
	authenticateFn func(ctx context.Context, channel domain.Channel, identifier, secret string) (domain.Session, error)
	issueCodeFn    func(ctx context.Context, mobile string) error
	linkFn         func(ctx context.Context, actor domain.Session, email, mobile string) (domain.Session, error)
	resetFn        func(ctx context.Context, identifier string) error
	credentialFn   func(ctx context.Context, token, password string) error
	usernameFn     func(ctx context.Context, mobile string) error
	principalFn    func(ctx context.Context, userID int64) (domain.Session, error)
}

func (s *stubAccountService) Register(ctx context.Context, in ports.RegisterInput) (domain.Session, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccountService) Authenticate(ctx context.Context, channel domain.Channel, identifier, secret string) (domain.Session, error) {
	return s.authenticateFn(ctx, channel, identifier, secret)
}

func (s *stubAccountService) IssueCode(ctx context.Context, mobile string) error {
	return s.issueCodeFn(ctx, mobile)
}

func (s *stubAccountService) LinkChannel(ctx context.Context, actor domain.Session, email, mobile string) (domain.Session, error) {
	return s.linkFn(ctx, actor, email, mobile)
}

func (s *stubAccountService) Lookup(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not stubbed")
}

func (s *stubAccountService) Principal(ctx context.Context, userID int64) (domain.Session, error) {
	return s.principalFn(ctx, userID)
}

func (s *stubAccountService) RequestReset(ctx context.Context, identifier string) error {
	return s.resetFn(ctx, identifier)
}

func (s *stubAccountService) ResetCredential(ctx context.Context, token, password string) error {
	return s.credentialFn(ctx, token, password)
}

func (s *stubAccountService) RecoverUsername(ctx context.Context, mobile string) error {
	return s.usernameFn(ctx, mobile)
}

type stubSessionService struct {
	adminMode bool
	cleared   bool
	err       error
}

func (s *stubSessionService) Current(context.Context) (*domain.Session, error) { return nil, s.err }
func (s *stubSessionService) Establish(context.Context, domain.Session) error  { return s.err }
func (s *stubSessionService) IsAuthenticated(context.Context) (bool, error)    { return false, s.err }
func (s *stubSessionService) Restore(context.Context) (*domain.Session, error) { return nil, s.err }
func (s *stubSessionService) Refresh(context.Context, domain.User) error       { return s.err }
func (s *stubSessionService) Forget(context.Context, int64) error              { return s.err }
func (s *stubSessionService) AdminMode(context.Context) (bool, error)          { return s.adminMode, s.err }

func (s *stubSessionService) Clear(context.Context) error {
	s.cleared = true
	return s.err
}

func (s *stubSessionService) SetAdminMode(_ context.Context, actor domain.Session, on bool) error {
	if !actor.Can(domain.PrivViewPending) {
		return domain.ErrPrivilegeDenied
	}
	s.adminMode = on
	return s.err
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

var (
	userSession  = domain.Session{UserID: 10, Name: "Ravi", Email: "ravi@example.com", Role: domain.RoleUser}
	adminSession = domain.Session{UserID: 1, Name: "Admin User", Role: domain.RoleAdmin}
	ownerSession = domain.Session{UserID: 2, Name: "Owner User", Role: domain.RoleOwner}
)

func newTokens() *service.TokenIssuer { return service.NewTokenIssuer("secret", time.Hour) }

// newContext builds an echo context for method and target with an optional
// JSON body and principal.
func newContext(method, target, body string, session *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(middleware.SessionKey, *session)
	}
	return c, rec
}

// expectHTTPError asserts err is an echo.HTTPError with code.
func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != code {
		t.Fatalf("expected HTTP %d, got %v", code, err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

