package memory

import (
	"context"
	"sync"

	"github.com/philly/quillpost/internal/users/domain"
	"github.com/philly/quillpost/internal/users/ports"
)

// UserRepository indexes users by email. The check and the insert happen
// under one lock, so concurrent registrations cannot both succeed.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ports.ErrEmailTaken
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Len reports how many users are stored.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}

var _ ports.UserRepository = (*UserRepository)(nil)
