package ports

import (
	"context"
	"errors"

	"github.com/philly/quillpost/internal/users/domain"
)

// ErrEmailTaken is returned by Create when another user already owns the
// email. Backends enforce this themselves (unique index or an atomic
// check-and-put), so it is the authoritative duplicate signal.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	// Create stores a new user or fails with ErrEmailTaken
	Create(ctx context.Context, user *domain.User) error

	// FindByEmail returns the user with exactly this email, or nil, nil
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
