package domain

import (
	"strings"
	"time"
)

// Kind enumerates the submittable content types.
type Kind string

const (
	KindBusiness    Kind = "business"
	KindMeeting     Kind = "meeting"
	KindAchievement Kind = "achievement"
)

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{KindBusiness, KindMeeting, KindAchievement}
}

// ParseKind accepts the singular or plural name of a kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "business", "businesses":
		return KindBusiness, nil
	case "meeting", "meetings":
		return KindMeeting, nil
	case "achievement", "achievements":
		return KindAchievement, nil
	}
	return "", ErrNotFound
}

// Privilege returns the privilege required to submit content of kind k.
func (k Kind) Privilege() Privilege {
	switch k {
	case KindBusiness:
		return PrivSubmitBusiness
	case KindMeeting:
		return PrivSubmitMeeting
	case KindAchievement:
		return PrivSubmitAchievement
	}
	return ""
}

// Approvable is implemented by every content type that goes through review.
type Approvable interface {
	GetID() int64
	SetID(id int64)
	Kind() Kind
	Label() string
	Workflow() *Approval
}

// DateLayout is the calendar date format used by meetings and achievements.
const DateLayout = "2006-01-02"

// Business is a directory listing.
type Business struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	Approval
}

func (b *Business) GetID() int64        { return b.ID }
func (b *Business) SetID(id int64)      { b.ID = id }
func (b *Business) Kind() Kind          { return KindBusiness }
func (b *Business) Label() string       { return b.Name }
func (b *Business) Workflow() *Approval { return &b.Approval }

// Meeting is a scheduled community event. Date is YYYY-MM-DD and Type is
// typically weekly or monthly.
type Meeting struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Approval
}

const (
	MeetingWeekly  = "weekly"
	MeetingMonthly = "monthly"
)

func (m *Meeting) GetID() int64        { return m.ID }
func (m *Meeting) SetID(id int64)      { m.ID = id }
func (m *Meeting) Kind() Kind          { return KindMeeting }
func (m *Meeting) Label() string       { return m.Title }
func (m *Meeting) Workflow() *Approval { return &m.Approval }

// Achievement celebrates a community member.
type Achievement struct {
	ID          int64  `json:"id"`
	Person      string `json:"person"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Approval
}

func (a *Achievement) GetID() int64        { return a.ID }
func (a *Achievement) SetID(id int64)      { a.ID = id }
func (a *Achievement) Kind() Kind          { return KindAchievement }
func (a *Achievement) Label() string       { return a.Title }
func (a *Achievement) Workflow() *Approval { return &a.Approval }

// Today formats now as a calendar date.
func Today(now time.Time) string { return now.Format(DateLayout) }
