package domain

import "time"

// Role is the coarse access level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// Channel identifies how an account authenticates.
type Channel string

const (
	ChannelGmail  Channel = "gmail"
	ChannelMobile Channel = "mobile"
)

// User is a registered account. Credential holds a bcrypt hash.
type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Mobile     string    `json:"mobile"`
	Credential string    `json:"credential"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) SetID(id int64) { u.ID = id }

// Session returns the identity projection of u without the credential.
func (u *User) Session() Session {
	return Session{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Mobile: u.Mobile,
		Role:   u.Role,
	}
}

// Session is the authenticated principal passed to every operation.
// The zero value is an anonymous caller.
type Session struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Role   Role   `json:"role"`
}

// Authenticated reports whether s belongs to a known account.
func (s Session) Authenticated() bool {
	return s.UserID != 0 && s.Role.Valid()
}

// Can reports whether the session's role holds p.
func (s Session) Can(p Privilege) bool {
	if !s.Authenticated() {
		return false
	}
	return Permits(s.Role, p)
}
