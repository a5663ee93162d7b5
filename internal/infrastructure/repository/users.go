// Package repository implements the core ports on top of the document
// store. Each repository serialises read-modify-write cycles on its key.
package repository

import (
	"context"
	"sync"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/infrastructure/store"
)

type UserRepository struct {
	store *store.Store
	mu    sync.Mutex
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return store.Read[domain.User](ctx, r.store, store.KeyUsers)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.find(ctx, func(u *domain.User) bool { return u.ID == id })
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrNotFound
	}
	return r.find(ctx, func(u *domain.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	if mobile == "" {
		return nil, domain.ErrNotFound
	}
	return r.find(ctx, func(u *domain.User) bool { return u.Mobile == mobile })
}

func (r *UserRepository) find(ctx context.Context, match func(*domain.User) bool) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(&users[i]) {
			return &users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create assigns the user an id and appends it. It fails with
// domain.ErrDuplicateAccount when the email or mobile is already owned.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	if conflicts(users, user, 0) {
		return domain.ErrDuplicateAccount
	}
	_, err = store.Append(ctx, r.store, store.KeyUsers, user)
	return err
}

func (r *UserRepository) Update(ctx context.Context, id int64, fn func(*domain.User) error) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfUser(users, id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	updated := users[idx]
	if err := fn(&updated); err != nil {
		return nil, err
	}
	updated.ID = id
	if conflicts(users, &updated, id) {
		return nil, domain.ErrDuplicateAccount
	}

	users[idx] = updated
	if err := r.store.Write(ctx, store.KeyUsers, users); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	idx := indexOfUser(users, id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	users = append(users[:idx], users[idx+1:]...)
	return r.store.Write(ctx, store.KeyUsers, users)
}

// Seed writes users when no account exists yet. It reports whether it did.
func (r *UserRepository) Seed(ctx context.Context, users []domain.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.List(ctx)
	if err != nil || len(existing) > 0 {
		return false, err
	}
	return true, r.store.Write(ctx, store.KeyUsers, users)
}

func indexOfUser(users []domain.User, id int64) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

// conflicts reports whether another user, other than skipID, already owns
// candidate's email or mobile.
func conflicts(users []domain.User, candidate *domain.User, skipID int64) bool {
	for i := range users {
		u := &users[i]
		if skipID != 0 && u.ID == skipID {
			continue
		}
		if candidate.Email != "" && u.Email == candidate.Email {
			return true
		}
		if candidate.Mobile != "" && u.Mobile == candidate.Mobile {
			return true
		}
	}
	return false
}
