package service

import (
	"context"
	"sync"
	"time"

	"github.com/kapurocks/directory/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  []domain.User
	nextID int64
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), r.users...), nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for i := range r.users {
		if match(&r.users[i]) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return email != "" && u.Email == email })
}

func (r *stubUserRepo) FindByMobile(_ context.Context, mobile string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return mobile != "" && u.Mobile == mobile })
}

func (r *stubUserRepo) taken(c *domain.User, skip int64) bool {
	for _, u := range r.users {
		if u.ID == skip {
			continue
		}
		if (c.Email != "" && u.Email == c.Email) || (c.Mobile != "" && u.Mobile == c.Mobile) {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.taken(u, 0) {
		return domain.ErrDuplicateAccount
	}
	r.nextID++
	u.ID = 100 + r.nextID
	r.users = append(r.users, *u)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, fn func(*domain.User) error) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID != id {
			continue
		}
		u := r.users[i]
		if err := fn(&u); err != nil {
			return nil, err
		}
		if r.taken(&u, id) {
			return nil, domain.ErrDuplicateAccount
		}
		r.users[i] = u
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubUserRepo) Seed(_ context.Context, users []domain.User) (bool, error) {
	if len(r.users) > 0 {
		return false, nil
	}
	r.users = append(r.users, users...)
	return true, nil
}

type stubContentRepo[T any, PT interface {
	*T
	domain.Approvable
}] struct {
	items  []T
	nextID int64
	writes int
}

func (r *stubContentRepo[T, PT]) Create(_ context.Context, item *T) error {
	r.nextID++
	PT(item).SetID(r.nextID)
	r.items = append(r.items, *item)
	r.writes++
	return nil
}

func (r *stubContentRepo[T, PT]) List(context.Context) ([]T, error) {
	return append([]T(nil), r.items...), nil
}

func (r *stubContentRepo[T, PT]) Update(_ context.Context, id int64, fn func(*T) error) (*T, error) {
	for i := range r.items {
		if PT(&r.items[i]).GetID() != id {
			continue
		}
		v := r.items[i]
		if err := fn(&v); err != nil {
			return nil, err
		}
		r.items[i] = v
		r.writes++
		return &v, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubContentRepo[T, PT]) Seed(_ context.Context, items []T) (bool, error) {
	if len(r.items) > 0 {
		return false, nil
	}
	r.items = append(r.items, items...)
	return true, nil
}

type stubSessionRepo struct {
	session   *domain.Session
	adminMode bool
}

func (r *stubSessionRepo) Load(context.Context) (*domain.Session, error) {
	if r.session == nil {
		return nil, nil
	}
	s := *r.session
	return &s, nil
}

func (r *stubSessionRepo) Save(_ context.Context, s *domain.Session) error {
	if s == nil {
		r.session = nil
		return nil
	}
	c := *s
	r.session = &c
	return nil
}

func (r *stubSessionRepo) AdminMode(context.Context) (bool, error) { return r.adminMode, nil }

func (r *stubSessionRepo) SetAdminMode(_ context.Context, on bool) error {
	r.adminMode = on
	return nil
}

type stubResetRepo struct {
	tokens []domain.ResetToken
}

func (r *stubResetRepo) Save(_ context.Context, t domain.ResetToken) error {
	r.tokens = append(r.tokens, t)
	return nil
}

func (r *stubResetRepo) Consume(_ context.Context, digest string, now time.Time) (*domain.ResetToken, error) {
	for i, t := range r.tokens {
		if t.Digest == digest && !t.Expired(now) {
			r.tokens = append(r.tokens[:i], r.tokens[i+1:]...)
			return &t, nil
		}
	}
	return nil, domain.ErrInvalidResetToken
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *stubNotifier) Notify(_ context.Context, msg domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *stubNotifier) last() domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return domain.Notification{}
	}
	return n.sent[len(n.sent)-1]
}

var (
	userSession  = domain.Session{UserID: 10, Name: "Ravi", Role: domain.RoleUser}
	adminSession = domain.Session{UserID: SeedAdminID, Name: "Admin User", Role: domain.RoleAdmin}
	ownerSession = domain.Session{UserID: SeedOwnerID, Name: "Owner User", Role: domain.RoleOwner}
)
