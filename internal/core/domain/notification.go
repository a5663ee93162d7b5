package domain

import "time"

// Medium is the out-of-band channel a notification travels on.
type Medium string

const (
	MediumEmail Medium = "email"
	MediumSMS   Medium = "sms"
)

// Notification is a message delivered outside the HTTP response, such as a
// one-time code or a recovery link.
type Notification struct {
	Medium    Medium
	Recipient string
	Subject   string
	Body      string
}

// ResetToken authorises a single credential reset. Only the digest of the
// token handed to the user is persisted.
type ResetToken struct {
	Digest    string    `json:"digest"`
	UserID    int64     `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (t ResetToken) Expired(now time.Time) bool { return !now.Before(t.ExpiresAt) }
