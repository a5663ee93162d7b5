package domain

import "time"

// Status is the review state of a submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Level is one of the three sign-off slots.
type Level int

const (
	Level1 Level = 1
	Level2 Level = 2
	Level3 Level = 3
)

const levelCount = 3

func (l Level) Valid() bool { return l >= Level1 && l <= Level3 }

// ApprovalRecord is one admin's sign-off on a level.
type ApprovalRecord struct {
	AdminID    int64     `json:"adminId"`
	ApprovedAt time.Time `json:"approvedAt"`
}

// Approval is the review state shared by every submittable kind. It is
// embedded in the content types so its fields sit next to the content in
// the persisted document.
//
// Status is approved exactly when all three levels are recorded, and a
// rejected approval never changes again.
type Approval struct {
	Status      Status          `json:"status"`
	Level1      *ApprovalRecord `json:"level1Approval"`
	Level2      *ApprovalRecord `json:"level2Approval"`
	Level3      *ApprovalRecord `json:"level3Approval"`
	SubmittedBy int64           `json:"submittedBy"`
	SubmittedAt time.Time       `json:"submittedAt"`
	RejectedBy  *int64          `json:"rejectedBy,omitempty"`
	RejectedAt  *time.Time      `json:"rejectedAt,omitempty"`
}

// NewApproval returns the pending state of a fresh submission.
func NewApproval(submittedBy int64, now time.Time) Approval {
	return Approval{
		Status:      StatusPending,
		SubmittedBy: submittedBy,
		SubmittedAt: now,
	}
}

func (a *Approval) slot(l Level) **ApprovalRecord {
	switch l {
	case Level1:
		return &a.Level1
	case Level2:
		return &a.Level2
	case Level3:
		return &a.Level3
	}
	return nil
}

// Record returns the sign-off stored for l, or nil.
func (a *Approval) Record(l Level) *ApprovalRecord {
	if s := a.slot(l); s != nil {
		return *s
	}
	return nil
}

// ApprovalCount is the number of levels signed off.
func (a *Approval) ApprovalCount() int {
	n := 0
	for l := Level1; l <= Level3; l++ {
		if a.Record(l) != nil {
			n++
		}
	}
	return n
}

func (a *Approval) IsFullyApproved() bool { return a.ApprovalCount() == levelCount }

func (a *Approval) IsRejected() bool { return a.Status == StatusRejected }

// IsPublished reports whether the item may appear in public listings.
func (a *Approval) IsPublished() bool {
	return a.Status == StatusApproved && a.IsFullyApproved()
}

// AwaitingReview reports whether the item belongs in the admin queue.
func (a *Approval) AwaitingReview() bool {
	return !a.IsRejected() && !a.IsFullyApproved()
}

// NextLevel is the level an approval without an explicit level targets:
// the first unsigned slot. With sequential approvals that is
// ApprovalCount()+1. A fully approved item reports Level3.
func (a *Approval) NextLevel() Level {
	for l := Level1; l <= Level3; l++ {
		if a.Record(l) == nil {
			return l
		}
	}
	return Level3
}

// Approve records adminID's sign-off on level l. On error a is unchanged.
func (a *Approval) Approve(l Level, adminID int64, now time.Time) error {
	if !l.Valid() {
		return ErrInvalidLevel
	}
	if a.IsRejected() {
		return ErrItemRejected
	}
	s := a.slot(l)
	if *s != nil {
		return ErrLevelAlreadyApproved
	}
	*s = &ApprovalRecord{AdminID: adminID, ApprovedAt: now}
	if a.IsFullyApproved() {
		a.Status = StatusApproved
	}
	return nil
}

// Reject marks the item rejected, including items already approved.
func (a *Approval) Reject(adminID int64, now time.Time) error {
	if a.IsRejected() {
		return ErrItemRejected
	}
	a.Status = StatusRejected
	a.RejectedBy = &adminID
	a.RejectedAt = &now
	return nil
}

// Override forces the item into status while keeping the status
// invariants: approving fills every unsigned level with actorID, and a
// pending status can only be confirmed, never restored.
func (a *Approval) Override(status Status, actorID int64, now time.Time) error {
	switch status {
	case StatusApproved:
		if a.IsRejected() {
			return ErrItemRejected
		}
		for l := Level1; l <= Level3; l++ {
			if s := a.slot(l); *s == nil {
				*s = &ApprovalRecord{AdminID: actorID, ApprovedAt: now}
			}
		}
		a.Status = StatusApproved
		return nil
	case StatusRejected:
		return a.Reject(actorID, now)
	case StatusPending:
		if a.Status != StatusPending {
			return ErrInvalidStatus
		}
		return nil
	}
	return ErrInvalidStatus
}
