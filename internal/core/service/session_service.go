package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

// SessionManager holds the process-wide session: the identity that last
// signed in on this installation. It survives restarts through the store.
type SessionManager struct {
	repo   ports.SessionRepository
	logger zerolog.Logger
	mu     sync.Mutex
}

func NewSessionManager(repo ports.SessionRepository, logger zerolog.Logger) *SessionManager {
	return &SessionManager{repo: repo, logger: logger}
}

func (m *SessionManager) Current(ctx context.Context) (*domain.Session, error) {
	return m.repo.Load(ctx)
}

func (m *SessionManager) Establish(ctx context.Context, session domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.Save(ctx, &session)
}

// Clear ends the session and switches admin mode off.
func (m *SessionManager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clear(ctx)
}

func (m *SessionManager) clear(ctx context.Context) error {
	if err := m.repo.Save(ctx, nil); err != nil {
		return err
	}
	return m.repo.SetAdminMode(ctx, false)
}

func (m *SessionManager) IsAuthenticated(ctx context.Context) (bool, error) {
	s, err := m.repo.Load(ctx)
	return s != nil, err
}

// Restore loads the persisted session at startup.
func (m *SessionManager) Restore(ctx context.Context) (*domain.Session, error) {
	s, err := m.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s != nil {
		m.logger.Info().Int64("user_id", s.UserID).Str("role", string(s.Role)).Msg("session restored")
	}
	return s, nil
}

// Refresh rewrites the session from user when it belongs to that user.
func (m *SessionManager) Refresh(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.repo.Load(ctx)
	if err != nil || current == nil || current.UserID != user.ID {
		return err
	}
	next := user.Session()
	return m.repo.Save(ctx, &next)
}

// Forget clears the session when it belongs to userID.
func (m *SessionManager) Forget(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.repo.Load(ctx)
	if err != nil || current == nil || current.UserID != userID {
		return err
	}
	return m.clear(ctx)
}

func (m *SessionManager) SetAdminMode(ctx context.Context, actor domain.Session, on bool) error {
	if !actor.Can(domain.PrivViewPending) {
		return domain.ErrPrivilegeDenied
	}
	if err := m.repo.SetAdminMode(ctx, on); err != nil {
		return err
	}
	m.logger.Info().Int64("user_id", actor.UserID).Bool("admin_mode", on).Msg("admin mode changed")
	return nil
}

func (m *SessionManager) AdminMode(ctx context.Context) (bool, error) {
	return m.repo.AdminMode(ctx)
}
