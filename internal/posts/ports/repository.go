package ports

import (
	"context"
	"errors"

	"github.com/philly/quillpost/internal/posts/domain"
)

// Repository errors - these are the canonical errors that repository
// implementations should return. Each backend translates its own
// "no such row/document/key" condition to these.
var (
	// ErrPostNotFound is returned when no post has the requested ID
	ErrPostNotFound = errors.New("post not found")
)

// PostRepository defines the interface for post persistence
type PostRepository interface {
	// List returns every post ordered by ascending ID
	List(ctx context.Context) ([]*domain.Post, error)

	// FindByID retrieves a post by exact ID
	FindByID(ctx context.Context, id int64) (*domain.Post, error)

	// Create stores a new post and assigns post.ID
	Create(ctx context.Context, post *domain.Post) error

	// Update applies the supplied patch fields atomically and returns the
	// stored result
	Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Post, error)

	// Delete removes a post
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored posts
	Count(ctx context.Context) (int, error)
}
