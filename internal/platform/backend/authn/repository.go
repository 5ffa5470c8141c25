package authn

import (
	"context"
	"time"
)

// UserRepository persists accounts. Lookups miss with ErrUserNotFound and a
// taken email fails Create with ErrEmailAlreadyExists.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// SessionRepository persists the sessions behind issued tokens.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error

	// FindByID misses with ErrSessionNotFound.
	FindByID(ctx context.Context, id string) (*Session, error)

	// Active lists the user's sessions still live at the given time, oldest first.
	Active(ctx context.Context, userID string, at time.Time) ([]*Session, error)

	Revoke(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error

	// DeleteExpired drops sessions that ended before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
