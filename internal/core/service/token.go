package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kapurocks/directory/internal/core/domain"
)

// sessionClaims is the JWT payload. Only UserID is authoritative; the other
// fields are a snapshot from issue time for clients.
type sessionClaims struct {
	UserID int64       `json:"uid"`
	Name   string      `json:"name"`
	Email  string      `json:"email,omitempty"`
	Mobile string      `json:"mobile,omitempty"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, clock: time.Now}
}

func (t *TokenIssuer) Issue(s domain.Session) (string, error) {
	now := t.clock()
	claims := sessionClaims{
		UserID: s.UserID,
		Name:   s.Name,
		Email:  s.Email,
		Mobile: s.Mobile,
		Role:   s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies raw and returns the session it carries.
func (t *TokenIssuer) Parse(raw string) (domain.Session, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.clock))
	if err != nil || !tkn.Valid {
		return domain.Session{}, domain.ErrUnauthenticated
	}

	s := domain.Session{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Mobile: claims.Mobile,
		Role:   claims.Role,
	}
	if !s.Authenticated() {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return s, nil
}
