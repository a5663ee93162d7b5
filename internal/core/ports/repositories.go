package ports

import (
	"context"
	"time"

	"github.com/kapurocks/directory/internal/core/domain"
)

// UserRepository persists accounts. Create enforces email and mobile
// uniqueness atomically with the insert.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByMobile(ctx context.Context, mobile string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id int64, fn func(*domain.User) error) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// ContentRepository persists one kind of submission. Update applies fn to
// a copy of the stored item and writes it back only when fn succeeds.
type ContentRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int64, fn func(*T) error) (*T, error)
}

// SessionRepository persists the process-wide session and admin mode flag.
type SessionRepository interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	AdminMode(ctx context.Context) (bool, error)
	SetAdminMode(ctx context.Context, on bool) error
}

// ResetTokenRepository stores pending credential resets.
type ResetTokenRepository interface {
	Save(ctx context.Context, token domain.ResetToken) error
	// Consume removes and returns the token with the given digest. Missing
	// or expired tokens yield domain.ErrInvalidResetToken.
	Consume(ctx context.Context, digest string, now time.Time) (*domain.ResetToken, error)
}
