package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kapurocks/directory/internal/core/domain"
)

// Fixed ids of the bootstrap accounts.
const (
	SeedAdminID int64 = 1
	SeedOwnerID int64 = 2
)

type seedable[T any] interface {
	Seed(ctx context.Context, items []T) (bool, error)
}

// SeedOptions controls the first-run bootstrap.
type SeedOptions struct {
	AdminPassword string
	OwnerPassword string
	SampleContent bool
	BcryptCost    int
}

// Seeder writes the bootstrap accounts and sample directory on first run.
// Collections that already hold data are left alone.
type Seeder struct {
	users        seedable[domain.User]
	businesses   seedable[domain.Business]
	meetings     seedable[domain.Meeting]
	achievements seedable[domain.Achievement]
	logger       zerolog.Logger
	clock        func() time.Time
}

func NewSeeder(
	users seedable[domain.User],
	businesses seedable[domain.Business],
	meetings seedable[domain.Meeting],
	achievements seedable[domain.Achievement],
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		users:        users,
		businesses:   businesses,
		meetings:     meetings,
		achievements: achievements,
		logger:       logger,
		clock:        time.Now,
	}
}

func (s *Seeder) Run(ctx context.Context, opts SeedOptions) error {
	now := s.clock().UTC()

	users, err := SeedUsers(opts, now)
	if err != nil {
		return err
	}
	if err := seedOne(ctx, s, "users", s.users, users); err != nil {
		return err
	}
	if !opts.SampleContent {
		return nil
	}
	if err := seedOne(ctx, s, "businesses", s.businesses, SampleBusinesses(now)); err != nil {
		return err
	}
	if err := seedOne(ctx, s, "meetings", s.meetings, SampleMeetings(now)); err != nil {
		return err
	}
	return seedOne(ctx, s, "achievements", s.achievements, SampleAchievements(now))
}

func seedOne[T any](ctx context.Context, s *Seeder, name string, target seedable[T], items []T) error {
	seeded, err := target.Seed(ctx, items)
	if err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	if seeded {
		s.logger.Info().Str("collection", name).Int("count", len(items)).Msg("seeded")
	}
	return nil
}

// SeedUsers builds the admin and owner bootstrap accounts.
func SeedUsers(opts SeedOptions, now time.Time) ([]domain.User, error) {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin credential: %w", err)
	}
	ownerHash, err := bcrypt.GenerateFromPassword([]byte(opts.OwnerPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash owner credential: %w", err)
	}

	return []domain.User{
		{
			ID:         SeedAdminID,
			Name:       "Admin User",
			Email:      "admin@kapurocks.com",
			Mobile:     "+91 98765 43210",
			Credential: string(adminHash),
			Role:       domain.RoleAdmin,
			CreatedAt:  now,
		},
		{
			ID:         SeedOwnerID,
			Name:       "Owner User",
			Email:      "owner@kapurocks.com",
			Mobile:     "+91 98765 43211",
			Credential: string(ownerHash),
			Role:       domain.RoleOwner,
			CreatedAt:  now,
		},
	}, nil
}

// approvedBySeedAdmin is the review state of sample content.
func approvedBySeedAdmin(now time.Time) domain.Approval {
	rec := func() *domain.ApprovalRecord {
		return &domain.ApprovalRecord{AdminID: SeedAdminID, ApprovedAt: now}
	}
	return domain.Approval{
		Status:      domain.StatusApproved,
		Level1:      rec(),
		Level2:      rec(),
		Level3:      rec(),
		SubmittedBy: SeedAdminID,
		SubmittedAt: now,
	}
}

func SampleBusinesses(now time.Time) []domain.Business {
	return []domain.Business{
		{
			ID:          1,
			Name:        "Kapu Tech Solutions",
			Owner:       "Rajesh Kapu",
			Category:    "technology",
			Description: "Leading software development and IT consulting services for businesses.",
			Email:       "contact@kaputech.com",
			Phone:       "+91 98765 43210",
			Address:     "Hyderabad, Telangana",
			Website:     "https://kaputech.com",
			Approval:    approvedBySeedAdmin(now),
		},
		{
			ID:          2,
			Name:        "Balija Spices & Foods",
			Owner:       "Priya Balija",
			Category:    "food",
			Description: "Authentic South Indian spices and traditional food products.",
			Email:       "info@balijaspices.com",
			Phone:       "+91 98765 43211",
			Address:     "Chennai, Tamil Nadu",
			Approval:    approvedBySeedAdmin(now),
		},
		{
			ID:          3,
			Name:        "Kapu Educational Academy",
			Owner:       "Dr. Suresh Kapu",
			Category:    "education",
			Description: "Quality education and coaching for competitive exams.",
			Email:       "academy@kapuedu.com",
			Phone:       "+91 98765 43212",
			Address:     "Bangalore, Karnataka",
			Website:     "https://kapuedu.com",
			Approval:    approvedBySeedAdmin(now),
		},
	}
}

func SampleMeetings(now time.Time) []domain.Meeting {
	return []domain.Meeting{
		{
			ID:          1,
			Title:       "Monthly Community Gathering",
			Type:        domain.MeetingMonthly,
			Date:        domain.Today(now.AddDate(0, 1, 0)),
			Time:        "18:00",
			Location:    "Community Hall, Hyderabad",
			Description: "Monthly meetup to discuss community initiatives and networking.",
			Approval:    approvedBySeedAdmin(now),
		},
		{
			ID:          2,
			Title:       "Weekly Business Networking",
			Type:        domain.MeetingWeekly,
			Date:        domain.Today(now.AddDate(0, 0, 7)),
			Time:        "19:00",
			Location:    "Online - Zoom",
			Description: "Weekly networking session for business owners and entrepreneurs.",
			Approval:    approvedBySeedAdmin(now),
		},
	}
}

func SampleAchievements(now time.Time) []domain.Achievement {
	return []domain.Achievement{
		{
			ID:          1,
			Person:      "Dr. Anil Kapu",
			Title:       "Published Research Paper",
			Category:    "academic",
			Description: "Published groundbreaking research in medical science, contributing to community recognition.",
			Date:        domain.Today(now),
			Approval:    approvedBySeedAdmin(now),
		},
		{
			ID:          2,
			Person:      "Sneha Balija",
			Title:       "Business Excellence Award",
			Category:    "business",
			Description: "Received state-level award for outstanding contribution to entrepreneurship.",
			Date:        domain.Today(now.AddDate(0, 0, -7)),
			Approval:    approvedBySeedAdmin(now),
		},
	}
}
