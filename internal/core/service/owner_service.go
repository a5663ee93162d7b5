package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

// OwnerService manages roles and accounts. Every operation requires the
// manage-users privilege, and owner accounts are never changed.
type OwnerService struct {
	users    ports.UserRepository
	sessions ports.SessionService
	logger   zerolog.Logger
}

func NewOwnerService(users ports.UserRepository, sessions ports.SessionService, logger zerolog.Logger) *OwnerService {
	return &OwnerService{users: users, sessions: sessions, logger: logger}
}

func (s *OwnerService) ListUsers(ctx context.Context, actor domain.Session) ([]domain.User, error) {
	if !actor.Can(domain.PrivManageUsers) {
		return nil, domain.ErrPrivilegeDenied
	}
	return s.users.List(ctx)
}

func (s *OwnerService) Promote(ctx context.Context, actor domain.Session, userID int64) (*domain.User, error) {
	return s.setRole(ctx, actor, userID, domain.RoleAdmin)
}

func (s *OwnerService) Demote(ctx context.Context, actor domain.Session, userID int64) (*domain.User, error) {
	return s.setRole(ctx, actor, userID, domain.RoleUser)
}

func (s *OwnerService) setRole(ctx context.Context, actor domain.Session, userID int64, role domain.Role) (*domain.User, error) {
	if !actor.Can(domain.PrivManageUsers) {
		return nil, domain.ErrPrivilegeDenied
	}

	user, err := s.users.Update(ctx, userID, func(u *domain.User) error {
		if u.Role == domain.RoleOwner {
			return domain.ErrOwnerProtected
		}
		u.Role = role
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Refresh(ctx, *user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("actor_id", actor.UserID).
		Int64("user_id", userID).
		Str("role", string(role)).
		Msg("role changed")
	return user, nil
}

func (s *OwnerService) Remove(ctx context.Context, actor domain.Session, userID int64) error {
	if !actor.Can(domain.PrivManageUsers) {
		return domain.ErrPrivilegeDenied
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleOwner {
		return domain.ErrOwnerProtected
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.sessions.Forget(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("actor_id", actor.UserID).Int64("user_id", userID).Msg("user removed")
	return nil
}
