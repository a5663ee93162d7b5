package repository

import (
	"context"
	"sync"
	"time"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/infrastructure/store"
)

// ResetTokenRepository keeps pending resets under one key and drops
// expired entries whenever it writes.
type ResetTokenRepository struct {
	store *store.Store
	clock func() time.Time
	mu    sync.Mutex
}

func NewResetTokenRepository(s *store.Store, clock func() time.Time) *ResetTokenRepository {
	if clock == nil {
		clock = time.Now
	}
	return &ResetTokenRepository{store: s, clock: clock}
}

func (r *ResetTokenRepository) Save(ctx context.Context, token domain.ResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokens, err := r.live(ctx, r.clock())
	if err != nil {
		return err
	}
	tokens = append(tokens, token)
	return r.store.Write(ctx, store.KeyPasswordResets, tokens)
}

func (r *ResetTokenRepository) Consume(ctx context.Context, digest string, now time.Time) (*domain.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokens, err := r.live(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range tokens {
		if tokens[i].Digest != digest {
			continue
		}
		found := tokens[i]
		tokens = append(tokens[:i], tokens[i+1:]...)
		if err := r.store.Write(ctx, store.KeyPasswordResets, tokens); err != nil {
			return nil, err
		}
		return &found, nil
	}
	return nil, domain.ErrInvalidResetToken
}

func (r *ResetTokenRepository) live(ctx context.Context, now time.Time) ([]domain.ResetToken, error) {
	tokens, err := store.Read[domain.ResetToken](ctx, r.store, store.KeyPasswordResets)
	if err != nil {
		return nil, err
	}
	kept := tokens[:0]
	for _, t := range tokens {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	return kept, nil
}
