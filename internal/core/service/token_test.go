package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kapurocks/directory/internal/core/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	s := domain.Session{UserID: 7, Name: "Ravi", Email: "ravi@example.com", Role: domain.RoleAdmin}

	raw, err := issuer.Issue(s)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != s {
		t.Fatalf("expected %+v, got %+v", s, got)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	s := domain.Session{UserID: 7, Role: domain.RoleUser}

	forged, _ := NewTokenIssuer("other", time.Hour).Issue(s)

	expiredIssuer := NewTokenIssuer("secret", time.Minute)
	expiredIssuer.clock = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _ := expiredIssuer.Issue(s)

	anonymous, _ := issuer.Issue(domain.Session{Role: domain.RoleOwner})

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": 7, "role": "owner"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, raw := range map[string]string{
		"wrong secret": forged,
		"expired":      expired,
		"no principal": anonymous,
		"alg none":     none,
		"garbage":      "not-a-token",
	} {
		if _, err := issuer.Parse(raw); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}
