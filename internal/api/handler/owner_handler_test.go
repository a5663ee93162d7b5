package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/service"
	"github.com/kapurocks/directory/internal/infrastructure/repository"
	"github.com/kapurocks/directory/internal/infrastructure/store"
)

func newOwnerHandler(t *testing.T) *OwnerHandler {
	t.Helper()
	s := store.New(store.NewMemory())
	users := repository.NewUserRepository(s)
	ctx := context.Background()
	seed, err := service.SeedUsers(service.SeedOptions{AdminPassword: "a", OwnerPassword: "o", BcryptCost: 4}, contentNow)
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}
	if _, err := users.Seed(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := users.Create(ctx, &domain.User{Name: "Ravi", Email: "ravi@example.com", Role: domain.RoleUser}); err != nil {
		t.Fatalf("create: %v", err)
	}

	sessions := service.NewSessionManager(repository.NewSessionRepository(s), zerolog.Nop())
	return NewOwnerHandler(service.NewOwnerService(users, sessions, zerolog.Nop()))
}

func listUsers(t *testing.T, h *OwnerHandler) []userResponse {
	t.Helper()
	c, rec := newContext(http.MethodGet, "/v1/owner/users", "", &ownerSession)
	if err := h.ListUsers(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(rec.Body.String(), "credential") {
		t.Fatalf("credentials must not be exposed: %s", rec.Body.String())
	}
	var out []userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return out
}

func userAction(h *OwnerHandler, method, action, id string, session *domain.Session) (*userResponse, error) {
	c, rec := newContext(method, "/v1/owner/users/"+id+"/"+action, "", session)
	c.SetParamNames("id")
	c.SetParamValues(id)

	var err error
	switch action {
	case "promote":
		err = h.Promote(c)
	case "demote":
		err = h.Demote(c)
	case "":
		err = h.Remove(c)
	}
	if err != nil {
		return nil, err
	}
	var out userResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return &out, nil
}

func TestOwnerHandler_PromoteDemote(t *testing.T) {
	h := newOwnerHandler(t)
	users := listUsers(t, h)
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	id := strconv.FormatInt(users[2].ID, 10)

	u, err := userAction(h, http.MethodPost, "promote", id, &ownerSession)
	if err != nil || u.Role != domain.RoleAdmin {
		t.Fatalf("promote: %+v %v", u, err)
	}
	u, err = userAction(h, http.MethodPost, "demote", id, &ownerSession)
	if err != nil || u.Role != domain.RoleUser {
		t.Fatalf("demote: %+v %v", u, err)
	}
}

func TestOwnerHandler_Guards(t *testing.T) {
	h := newOwnerHandler(t)

	if _, err := userAction(h, http.MethodPost, "demote", "2", &ownerSession); !errors.Is(err, domain.ErrOwnerProtected) {
		t.Fatalf("expected ErrOwnerProtected, got %v", err)
	}
	if _, err := userAction(h, http.MethodPost, "promote", "1", &adminSession); !errors.Is(err, domain.ErrPrivilegeDenied) {
		t.Fatalf("expected ErrPrivilegeDenied, got %v", err)
	}
	if _, err := userAction(h, http.MethodPost, "promote", "abc", &ownerSession); err == nil {
		t.Fatalf("expected error for malformed id")
	} else {
		expectHTTPError(t, err, http.StatusBadRequest)
	}
}

func TestOwnerHandler_Remove(t *testing.T) {
	h := newOwnerHandler(t)
	id := strconv.FormatInt(listUsers(t, h)[2].ID, 10)

	if _, err := userAction(h, http.MethodDelete, "", id, &ownerSession); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := listUsers(t, h); len(got) != 2 {
		t.Fatalf("expected 2 users after removal, got %d", len(got))
	}
	if _, err := userAction(h, http.MethodDelete, "", id, &ownerSession); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
