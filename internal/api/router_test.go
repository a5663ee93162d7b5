package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kapurocks/directory/internal/api/handler"
	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/service"
	"github.com/kapurocks/directory/internal/infrastructure/repository"
	"github.com/kapurocks/directory/internal/infrastructure/store"
)

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, domain.Notification) error { return nil }

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	ctx := context.Background()
	st := store.New(store.NewMemory())
	users := repository.NewUserRepository(st)
	businesses := repository.NewBusinessRepository(st)
	meetings := repository.NewMeetingRepository(st)
	achievements := repository.NewAchievementRepository(st)

	seeder := service.NewSeeder(users, businesses, meetings, achievements, zerolog.Nop())
	err := seeder.Run(ctx, service.SeedOptions{
		AdminPassword: "admin123",
		OwnerPassword: "owner123",
		SampleContent: true,
		BcryptCost:    bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	sessions := service.NewSessionManager(repository.NewSessionRepository(st), zerolog.Nop())
	accounts := service.NewAccountService(
		users, sessions,
		service.NewStaticCodes("123456", discardNotifier{}),
		repository.NewResetTokenRepository(st, time.Now),
		discardNotifier{},
		zerolog.Nop(),
		service.AccountOptions{BcryptCost: bcrypt.MinCost},
	)

	return NewRouter(Dependencies{
		Accounts: accounts,
		Sessions: sessions,
		Content:  service.NewContentService(businesses, meetings, achievements, zerolog.Nop(), nil),
		Owner:    service.NewOwnerService(users, sessions, zerolog.Nop()),
		Tokens:   service.NewTokenIssuer("test-secret", time.Hour),
		Ready:    map[string]handler.Pinger{"store": st},
		Logger:   zerolog.Nop(),
		Registry: prometheus.NewRegistry(),
	})
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) (int, map[string]any, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var obj map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &obj)
	return rec.Code, obj, rec.Body.String()
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	code, resp, raw := do(t, e, http.MethodPost, "/v1/auth/login", "",
		`{"channel":"gmail","identifier":"`+email+`","secret":"`+password+`"}`)
	if code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, code, raw)
	}
	return resp["token"].(string)
}

func TestRouter_SubmissionReviewFlow(t *testing.T) {
	e := newTestRouter(t)

	code, resp, raw := do(t, e, http.MethodPost, "/v1/auth/register", "",
		`{"channel":"gmail","name":"Ravi","email":"ravi@example.com","password":"pw"}`)
	if code != http.StatusCreated {
		t.Fatalf("register: %d %s", code, raw)
	}
	userToken := resp["token"].(string)

	code, resp, raw = do(t, e, http.MethodPost, "/v1/businesses", userToken,
		`{"name":"Kapu Sweets","owner":"Ravi","category":"food","description":"Sweets"}`)
	if code != http.StatusCreated {
		t.Fatalf("submit: %d %s", code, raw)
	}
	id := int64(resp["id"].(float64))
	path := "/v1/admin/businesses/" + strconv.FormatInt(id, 10)

	adminToken := login(t, e, "admin@kapurocks.com", "admin123")

	if code, _, _ := do(t, e, http.MethodPost, path+"/approve", userToken, ""); code != http.StatusForbidden {
		t.Fatalf("user approve: expected 403, got %d", code)
	}
	if code, _, _ := do(t, e, http.MethodPost, path+"/approve", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("anonymous approve: expected 401, got %d", code)
	}

	for level := 1; level <= 3; level++ {
		code, _, raw := do(t, e, http.MethodPost, path+"/approve", adminToken, `{"level":`+strconv.Itoa(level)+`}`)
		if code != http.StatusOK {
			t.Fatalf("approve level %d: %d %s", level, code, raw)
		}
	}
	if code, _, _ := do(t, e, http.MethodPost, path+"/approve", adminToken, `{"level":2}`); code != http.StatusConflict {
		t.Fatalf("repeat approval: expected 409, got %d", code)
	}

	_, _, raw = do(t, e, http.MethodGet, "/v1/businesses?category=food", "", "")
	if !strings.Contains(raw, "Kapu Sweets") || !strings.Contains(raw, "Balija Spices") {
		t.Fatalf("published listing missing entries: %s", raw)
	}
}

func TestRouter_OwnerAdministration(t *testing.T) {
	e := newTestRouter(t)
	ownerToken := login(t, e, "owner@kapurocks.com", "owner123")
	adminToken := login(t, e, "admin@kapurocks.com", "admin123")

	if code, _, _ := do(t, e, http.MethodGet, "/v1/owner/users", adminToken, ""); code != http.StatusForbidden {
		t.Fatalf("admin listing users: expected 403, got %d", code)
	}
	code, _, raw := do(t, e, http.MethodGet, "/v1/owner/users", ownerToken, "")
	if code != http.StatusOK || strings.Contains(raw, "credential") {
		t.Fatalf("owner listing users: %d %s", code, raw)
	}
	if code, _, _ := do(t, e, http.MethodDelete, "/v1/owner/users/2", ownerToken, ""); code != http.StatusForbidden {
		t.Fatalf("removing the owner: expected 403, got %d", code)
	}
	if code, resp, _ := do(t, e, http.MethodPost, "/v1/owner/users/1/demote", ownerToken, ""); code != http.StatusOK || resp["role"] != "user" {
		t.Fatalf("demote admin: %d %+v", code, resp)
	}
}

func TestRouter_MobileLoginAndMe(t *testing.T) {
	e := newTestRouter(t)

	if code, _, _ := do(t, e, http.MethodPost, "/v1/auth/otp", "", `{"mobile":"+91 98765 43210"}`); code != http.StatusAccepted {
		t.Fatalf("otp: expected 202, got %d", code)
	}
	if code, _, _ := do(t, e, http.MethodPost, "/v1/auth/login", "", `{"channel":"mobile","identifier":"+91 98765 43210","secret":"000000"}`); code != http.StatusUnauthorized {
		t.Fatalf("wrong code: expected 401, got %d", code)
	}
	code, resp, raw := do(t, e, http.MethodPost, "/v1/auth/login", "", `{"channel":"mobile","identifier":"+91 98765 43210","secret":"123456"}`)
	if code != http.StatusOK {
		t.Fatalf("mobile login: %d %s", code, raw)
	}
	token := resp["token"].(string)

	if code, _, _ := do(t, e, http.MethodPut, "/v1/me/admin-mode", token, `{"enabled":true}`); code != http.StatusOK {
		t.Fatalf("admin mode: expected 200, got %d", code)
	}
	code, resp, _ = do(t, e, http.MethodGet, "/v1/me", token, "")
	if code != http.StatusOK || resp["adminMode"] != true {
		t.Fatalf("me: %d %+v", code, resp)
	}
	if code, _, _ := do(t, e, http.MethodPost, "/v1/auth/logout", token, ""); code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", code)
	}
}

func TestRouter_Ops(t *testing.T) {
	e := newTestRouter(t)
	for _, path := range []string{"/health", "/health/ready", "/metrics", "/swagger/doc.json"} {
		if code, _, raw := do(t, e, http.MethodGet, path, "", ""); code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d %s", path, code, raw)
		}
	}
}

func TestRouter_RoleChangesApplyToIssuedTokens(t *testing.T) {
	e := newTestRouter(t)
	ownerToken := login(t, e, "owner@kapurocks.com", "owner123")
	adminToken := login(t, e, "admin@kapurocks.com", "admin123")

	code, resp, raw := do(t, e, http.MethodPost, "/v1/auth/register", "",
		`{"channel":"gmail","name":"Ravi","email":"ravi@example.com","password":"pw"}`)
	if code != http.StatusCreated {
		t.Fatalf("register: %d %s", code, raw)
	}
	userToken := resp["token"].(string)
	userID := strconv.FormatInt(int64(resp["session"].(map[string]any)["userId"].(float64)), 10)

	code, resp, raw = do(t, e, http.MethodPost, "/v1/businesses", userToken,
		`{"name":"Kapu Sweets","owner":"Ravi","category":"food","description":"Sweets"}`)
	if code != http.StatusCreated {
		t.Fatalf("submit: %d %s", code, raw)
	}
	approvePath := "/v1/admin/businesses/" + strconv.FormatInt(int64(resp["id"].(float64)), 10) + "/approve"

	if code, _, _ := do(t, e, http.MethodPost, "/v1/owner/users/1/demote", ownerToken, ""); code != http.StatusOK {
		t.Fatalf("demote admin: %d", code)
	}
	if code, _, raw := do(t, e, http.MethodPost, approvePath, adminToken, ""); code != http.StatusForbidden {
		t.Fatalf("demoted admin approving: expected 403, got %d %s", code, raw)
	}

	if code, _, _ := do(t, e, http.MethodPost, "/v1/owner/users/"+userID+"/promote", ownerToken, ""); code != http.StatusOK {
		t.Fatalf("promote user: %d", code)
	}
	if code, _, raw := do(t, e, http.MethodGet, "/v1/admin/pending", userToken, ""); code != http.StatusOK {
		t.Fatalf("promoted user viewing pending: expected 200, got %d %s", code, raw)
	}

	if code, _, _ := do(t, e, http.MethodDelete, "/v1/owner/users/"+userID, ownerToken, ""); code != http.StatusNoContent {
		t.Fatalf("remove user: %d", code)
	}
	code, _, raw = do(t, e, http.MethodPost, "/v1/achievements", userToken,
		`{"person":"Ravi","title":"Award","description":"Won"}`)
	if code != http.StatusUnauthorized {
		t.Fatalf("removed user submitting: expected 401, got %d %s", code, raw)
	}
}
