package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

// workflow is the kind-independent view of a content repository used by
// the review operations.
type workflow interface {
	list(ctx context.Context) ([]domain.Approvable, error)
	update(ctx context.Context, id int64, fn func(domain.Approvable) error) (domain.Approvable, error)
}

type repoWorkflow[T any, PT interface {
	*T
	domain.Approvable
}] struct {
	repo ports.ContentRepository[T]
}

func (w repoWorkflow[T, PT]) list(ctx context.Context) ([]domain.Approvable, error) {
	items, err := w.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Approvable, 0, len(items))
	for i := range items {
		out = append(out, PT(&items[i]))
	}
	return out, nil
}

func (w repoWorkflow[T, PT]) update(ctx context.Context, id int64, fn func(domain.Approvable) error) (domain.Approvable, error) {
	item, err := w.repo.Update(ctx, id, func(v *T) error { return fn(PT(v)) })
	if err != nil {
		return nil, err
	}
	return PT(item), nil
}

// ContentService runs submissions through the three-level review and
// serves the published directory.
type ContentService struct {
	businesses   ports.ContentRepository[domain.Business]
	meetings     ports.ContentRepository[domain.Meeting]
	achievements ports.ContentRepository[domain.Achievement]
	workflows    map[domain.Kind]workflow
	logger       zerolog.Logger
	clock        func() time.Time
}

func NewContentService(
	businesses ports.ContentRepository[domain.Business],
	meetings ports.ContentRepository[domain.Meeting],
	achievements ports.ContentRepository[domain.Achievement],
	logger zerolog.Logger,
	clock func() time.Time,
) *ContentService {
	if clock == nil {
		clock = time.Now
	}
	return &ContentService{
		businesses:   businesses,
		meetings:     meetings,
		achievements: achievements,
		workflows: map[domain.Kind]workflow{
			domain.KindBusiness:    repoWorkflow[domain.Business, *domain.Business]{repo: businesses},
			domain.KindMeeting:     repoWorkflow[domain.Meeting, *domain.Meeting]{repo: meetings},
			domain.KindAchievement: repoWorkflow[domain.Achievement, *domain.Achievement]{repo: achievements},
		},
		logger: logger,
		clock:  clock,
	}
}

// ---------------------------------------------------------------------------
// Submission
// ---------------------------------------------------------------------------

func (s *ContentService) SubmitBusiness(ctx context.Context, actor domain.Session, b domain.Business) (*domain.Business, error) {
	if !actor.Can(domain.KindBusiness.Privilege()) {
		return nil, domain.ErrPrivilegeDenied
	}
	b.Name = strings.TrimSpace(b.Name)
	b.Category = strings.ToLower(strings.TrimSpace(b.Category))
	if b.Name == "" || b.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", domain.ErrInvalidInput)
	}

	b.Approval = domain.NewApproval(actor.UserID, s.clock().UTC())
	if err := s.businesses.Create(ctx, &b); err != nil {
		return nil, err
	}
	s.logSubmitted(&b, actor)
	return &b, nil
}

func (s *ContentService) SubmitMeeting(ctx context.Context, actor domain.Session, m domain.Meeting) (*domain.Meeting, error) {
	if !actor.Can(domain.KindMeeting.Privilege()) {
		return nil, domain.ErrPrivilegeDenied
	}
	m.Title = strings.TrimSpace(m.Title)
	m.Type = strings.ToLower(strings.TrimSpace(m.Type))
	if m.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := validDate(m.Date); err != nil {
		return nil, err
	}

	m.Approval = domain.NewApproval(actor.UserID, s.clock().UTC())
	if err := s.meetings.Create(ctx, &m); err != nil {
		return nil, err
	}
	s.logSubmitted(&m, actor)
	return &m, nil
}

func (s *ContentService) SubmitAchievement(ctx context.Context, actor domain.Session, a domain.Achievement) (*domain.Achievement, error) {
	if !actor.Can(domain.KindAchievement.Privilege()) {
		return nil, domain.ErrPrivilegeDenied
	}
	a.Person = strings.TrimSpace(a.Person)
	a.Title = strings.TrimSpace(a.Title)
	if a.Person == "" || a.Title == "" {
		return nil, fmt.Errorf("%w: person and title are required", domain.ErrInvalidInput)
	}
	if a.Date == "" {
		a.Date = domain.Today(s.clock())
	}
	if err := validDate(a.Date); err != nil {
		return nil, err
	}

	a.Approval = domain.NewApproval(actor.UserID, s.clock().UTC())
	if err := s.achievements.Create(ctx, &a); err != nil {
		return nil, err
	}
	s.logSubmitted(&a, actor)
	return &a, nil
}

func (s *ContentService) logSubmitted(item domain.Approvable, actor domain.Session) {
	s.logger.Info().
		Str("kind", string(item.Kind())).
		Int64("id", item.GetID()).
		Str("label", item.Label()).
		Int64("submitted_by", actor.UserID).
		Msg("content submitted")
}

// ---------------------------------------------------------------------------
// Published listings
// ---------------------------------------------------------------------------

func (s *ContentService) ListBusinesses(ctx context.Context, f ports.BusinessFilter) ([]domain.Business, error) {
	items, err := s.businesses.List(ctx)
	if err != nil {
		return nil, err
	}
	category := strings.ToLower(strings.TrimSpace(f.Category))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := []domain.Business{}
	for _, b := range items {
		if !b.IsPublished() {
			continue
		}
		if category != "" && category != "all" && strings.ToLower(b.Category) != category {
			continue
		}
		if query != "" && !containsFold(query, b.Name, b.Owner, b.Description) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *ContentService) ListMeetings(ctx context.Context, f ports.MeetingFilter) ([]domain.Meeting, error) {
	for _, d := range []string{f.From, f.To} {
		if d != "" {
			if err := validDate(d); err != nil {
				return nil, err
			}
		}
	}

	items, err := s.meetings.List(ctx)
	if err != nil {
		return nil, err
	}
	today := domain.Today(s.clock())

	var keep func(m *domain.Meeting) bool
	ascending := false
	switch f.View {
	case ports.MeetingsUpcoming:
		keep = func(m *domain.Meeting) bool { return m.Date >= today }
		ascending = true
	case ports.MeetingsWeekly:
		keep = func(m *domain.Meeting) bool { return m.Type == domain.MeetingWeekly }
	case ports.MeetingsMonthly:
		keep = func(m *domain.Meeting) bool { return m.Type == domain.MeetingMonthly }
	case ports.MeetingsPast:
		keep = func(m *domain.Meeting) bool { return m.Date < today }
	case ports.MeetingsAll, "":
		keep = func(*domain.Meeting) bool { return true }
	default:
		return nil, fmt.Errorf("%w: unknown meeting view %q", domain.ErrInvalidInput, f.View)
	}

	meetingType := strings.ToLower(strings.TrimSpace(f.Type))
	out := []domain.Meeting{}
	for i := range items {
		m := &items[i]
		if !m.IsPublished() || !keep(m) {
			continue
		}
		if meetingType != "" && m.Type != meetingType {
			continue
		}
		if (f.From != "" && m.Date < f.From) || (f.To != "" && m.Date > f.To) {
			continue
		}
		out = append(out, *m)
	}

	slices.SortStableFunc(out, func(a, b domain.Meeting) int {
		c := cmp.Compare(a.Date+" "+a.Time, b.Date+" "+b.Time)
		if ascending {
			return c
		}
		return -c
	})
	return out, nil
}

// ListAchievements returns published achievements, newest first.
func (s *ContentService) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	items, err := s.achievements.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Achievement{}
	for _, a := range items {
		if a.IsPublished() {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Achievement) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return out, nil
}

// ---------------------------------------------------------------------------
// Review
// ---------------------------------------------------------------------------

func (s *ContentService) workflow(kind domain.Kind) (workflow, error) {
	w, ok := s.workflows[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrNotFound, kind)
	}
	return w, nil
}

// ListPending returns the items of kind that still await review.
func (s *ContentService) ListPending(ctx context.Context, actor domain.Session, kind domain.Kind) ([]domain.Approvable, error) {
	if !actor.Can(domain.PrivViewPending) {
		return nil, domain.ErrPrivilegeDenied
	}
	w, err := s.workflow(kind)
	if err != nil {
		return nil, err
	}
	items, err := w.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Approvable, 0, len(items))
	for _, item := range items {
		if item.Workflow().AwaitingReview() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *ContentService) Approve(ctx context.Context, actor domain.Session, kind domain.Kind, id int64, level domain.Level) (domain.Approvable, error) {
	if !actor.Can(domain.PrivApproveContent) {
		return nil, domain.ErrPrivilegeDenied
	}
	w, err := s.workflow(kind)
	if err != nil {
		return nil, err
	}

	item, err := w.update(ctx, id, func(item domain.Approvable) error {
		a := item.Workflow()
		if level == 0 {
			level = a.NextLevel()
		}
		return a.Approve(level, actor.UserID, s.clock().UTC())
	})
	if err != nil {
		return nil, err
	}

	ev := s.logger.Info().
		Str("kind", string(kind)).
		Int64("id", id).
		Int("level", int(level)).
		Int64("admin_id", actor.UserID)
	if item.Workflow().IsPublished() {
		ev.Msg("content published")
	} else {
		ev.Msg("content approved")
	}
	return item, nil
}

func (s *ContentService) Reject(ctx context.Context, actor domain.Session, kind domain.Kind, id int64) (domain.Approvable, error) {
	if !actor.Can(domain.PrivRejectContent) {
		return nil, domain.ErrPrivilegeDenied
	}
	w, err := s.workflow(kind)
	if err != nil {
		return nil, err
	}

	item, err := w.update(ctx, id, func(item domain.Approvable) error {
		return item.Workflow().Reject(actor.UserID, s.clock().UTC())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("kind", string(kind)).Int64("id", id).Int64("admin_id", actor.UserID).Msg("content rejected")
	return item, nil
}

// UpdateStatus is the owner's direct override of an item's status.
func (s *ContentService) UpdateStatus(ctx context.Context, actor domain.Session, kind domain.Kind, id int64, status domain.Status) (domain.Approvable, error) {
	if !actor.Can(domain.PrivOverrideStatus) {
		return nil, domain.ErrPrivilegeDenied
	}
	w, err := s.workflow(kind)
	if err != nil {
		return nil, err
	}

	item, err := w.update(ctx, id, func(item domain.Approvable) error {
		return item.Workflow().Override(status, actor.UserID, s.clock().UTC())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn().
		Str("kind", string(kind)).
		Int64("id", id).
		Str("status", string(status)).
		Int64("actor_id", actor.UserID).
		Msg("content status overridden")
	return item, nil
}

func validDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return nil
}

func containsFold(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
