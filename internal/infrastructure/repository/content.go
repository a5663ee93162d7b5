package repository

import (
	"context"
	"sync"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/infrastructure/store"
)

// Collection stores one kind of reviewable content under a single key.
type Collection[T any, PT interface {
	*T
	domain.Approvable
}] struct {
	store *store.Store
	key   string
	mu    sync.Mutex
}

func NewCollection[T any, PT interface {
	*T
	domain.Approvable
}](s *store.Store, key string) *Collection[T, PT] {
	return &Collection[T, PT]{store: s, key: key}
}

func NewBusinessRepository(s *store.Store) *Collection[domain.Business, *domain.Business] {
	return NewCollection[domain.Business](s, store.KeyBusinesses)
}

func NewMeetingRepository(s *store.Store) *Collection[domain.Meeting, *domain.Meeting] {
	return NewCollection[domain.Meeting](s, store.KeyMeetings)
}

func NewAchievementRepository(s *store.Store) *Collection[domain.Achievement, *domain.Achievement] {
	return NewCollection[domain.Achievement](s, store.KeyAchievements)
}

func (c *Collection[T, PT]) List(ctx context.Context) ([]T, error) {
	return store.Read[T](ctx, c.store, c.key)
}

// Create assigns item a fresh id and appends it.
func (c *Collection[T, PT]) Create(ctx context.Context, item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := store.Append[T, PT](ctx, c.store, c.key, PT(item))
	return err
}

func (c *Collection[T, PT]) Update(ctx context.Context, id int64, fn func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if PT(&items[i]).GetID() != id {
			continue
		}
		updated := items[i]
		if err := fn(&updated); err != nil {
			return nil, err
		}
		PT(&updated).SetID(id)
		items[i] = updated
		if err := c.store.Write(ctx, c.key, items); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, domain.ErrNotFound
}

// Seed writes items when the collection is empty. It reports whether it did.
func (c *Collection[T, PT]) Seed(ctx context.Context, items []T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.List(ctx)
	if err != nil || len(existing) > 0 {
		return false, err
	}
	return true, c.store.Write(ctx, c.key, items)
}
