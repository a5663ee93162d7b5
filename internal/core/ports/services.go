package ports

import (
	"context"

	"github.com/kapurocks/directory/internal/core/domain"
)

// RegisterInput carries a new account. Password applies to the gmail
// channel, Code to the mobile channel.
type RegisterInput struct {
	Channel  domain.Channel
	Name     string
	Email    string
	Mobile   string
	Password string
	Code     string
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (domain.Session, error)
	Authenticate(ctx context.Context, channel domain.Channel, identifier, secret string) (domain.Session, error)
	IssueCode(ctx context.Context, mobile string) error
	LinkChannel(ctx context.Context, actor domain.Session, email, mobile string) (domain.Session, error)
	Lookup(ctx context.Context, identifier string) (*domain.User, error)
	Principal(ctx context.Context, userID int64) (domain.Session, error)
	RequestReset(ctx context.Context, identifier string) error
	ResetCredential(ctx context.Context, token, password string) error
	RecoverUsername(ctx context.Context, mobile string) error
}

type SessionService interface {
	Current(ctx context.Context) (*domain.Session, error)
	Establish(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	Restore(ctx context.Context) (*domain.Session, error)
	Refresh(ctx context.Context, user domain.User) error
	Forget(ctx context.Context, userID int64) error
	SetAdminMode(ctx context.Context, actor domain.Session, on bool) error
	AdminMode(ctx context.Context) (bool, error)
}

// BusinessFilter narrows the published directory. An empty or "all"
// category matches every business; Query matches name, owner and
// description case-insensitively.
type BusinessFilter struct {
	Category string
	Query    string
}

// MeetingView selects one of the meeting tabs.
type MeetingView string

const (
	MeetingsUpcoming MeetingView = "upcoming"
	MeetingsWeekly   MeetingView = "weekly"
	MeetingsMonthly  MeetingView = "monthly"
	MeetingsPast     MeetingView = "past"
	MeetingsAll      MeetingView = "all"
)

// MeetingFilter narrows published meetings. From and To are inclusive
// YYYY-MM-DD bounds.
type MeetingFilter struct {
	View MeetingView
	Type string
	From string
	To   string
}

type ContentService interface {
	SubmitBusiness(ctx context.Context, actor domain.Session, b domain.Business) (*domain.Business, error)
	SubmitMeeting(ctx context.Context, actor domain.Session, m domain.Meeting) (*domain.Meeting, error)
	SubmitAchievement(ctx context.Context, actor domain.Session, a domain.Achievement) (*domain.Achievement, error)

	ListBusinesses(ctx context.Context, f BusinessFilter) ([]domain.Business, error)
	ListMeetings(ctx context.Context, f MeetingFilter) ([]domain.Meeting, error)
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)

	ListPending(ctx context.Context, actor domain.Session, kind domain.Kind) ([]domain.Approvable, error)
	// Approve signs off level on the item. A zero level targets the next
	// unsigned level.
	Approve(ctx context.Context, actor domain.Session, kind domain.Kind, id int64, level domain.Level) (domain.Approvable, error)
	Reject(ctx context.Context, actor domain.Session, kind domain.Kind, id int64) (domain.Approvable, error)
	UpdateStatus(ctx context.Context, actor domain.Session, kind domain.Kind, id int64, status domain.Status) (domain.Approvable, error)
}

type OwnerService interface {
	ListUsers(ctx context.Context, actor domain.Session) ([]domain.User, error)
	Promote(ctx context.Context, actor domain.Session, userID int64) (*domain.User, error)
	Demote(ctx context.Context, actor domain.Session, userID int64) (*domain.User, error)
	Remove(ctx context.Context, actor domain.Session, userID int64) error
}
