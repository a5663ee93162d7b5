package repository

import (
	"context"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/infrastructure/store"
)

type SessionRepository struct {
	store *store.Store
}

func NewSessionRepository(s *store.Store) *SessionRepository {
	return &SessionRepository{store: s}
}

// Load returns nil when no session is stored.
func (r *SessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	var s domain.Session
	ok, err := r.store.ReadScalar(ctx, store.KeyCurrentSession, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

// Save writes session, or null when it is nil.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	return r.store.Write(ctx, store.KeyCurrentSession, session)
}

func (r *SessionRepository) AdminMode(ctx context.Context) (bool, error) {
	var on bool
	_, err := r.store.ReadScalar(ctx, store.KeyAdminMode, &on)
	return on, err
}

func (r *SessionRepository) SetAdminMode(ctx context.Context, on bool) error {
	return r.store.Write(ctx, store.KeyAdminMode, on)
}
