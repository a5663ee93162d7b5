package handler

import "github.com/kapurocks/directory/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Accounts ---

type registerRequest struct {
	Channel  string `json:"channel"  validate:"required,oneof=gmail mobile"`
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

type loginRequest struct {
	Channel    string `json:"channel"    validate:"required,oneof=gmail mobile"`
	Identifier string `json:"identifier" validate:"required"`
	Secret     string `json:"secret"     validate:"required"`
}

type otpRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type recoverRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type recoverUsernameRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type resetRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type linkRequest struct {
	Email  string `json:"email"  validate:"omitempty,email"`
	Mobile string `json:"mobile"`
}

type adminModeRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type authResponse struct {
	Token   string         `json:"token"`
	Session domain.Session `json:"session"`
}

type meResponse struct {
	Session   domain.Session `json:"session"`
	AdminMode bool           `json:"adminMode"`
}

type adminModeResponse struct {
	AdminMode bool `json:"adminMode"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// userResponse is a directory account without its credential.
type userResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Mobile    string      `json:"mobile"`
	Role      domain.Role `json:"role"`
	CreatedAt string      `json:"createdAt"`
}

// --- Content ---

type businessRequest struct {
	Name        string `json:"name"        validate:"required"`
	Owner       string `json:"owner"`
	Category    string `json:"category"    validate:"required"`
	Description string `json:"description"`
	Email       string `json:"email"       validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Website     string `json:"website"     validate:"omitempty,url"`
}

type meetingRequest struct {
	Title       string `json:"title"       validate:"required"`
	Type        string `json:"type"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type achievementRequest struct {
	Person      string `json:"person"      validate:"required"`
	Title       string `json:"title"       validate:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"        validate:"omitempty,datetime=2006-01-02"`
}

type approveRequest struct {
	Level int `json:"level" validate:"omitempty,min=1,max=3"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// pendingResponse groups the review queue by kind.
type pendingResponse struct {
	Businesses   []domain.Approvable `json:"businesses"`
	Meetings     []domain.Approvable `json:"meetings"`
	Achievements []domain.Approvable `json:"achievements"`
}
