// Package memory keeps posts and users in process memory. It backs tests and
// the default development configuration; data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/philly/quillpost/internal/posts/domain"
	"github.com/philly/quillpost/internal/posts/ports"
)

// PostRepository is an ordered map of posts keyed by ID.
type PostRepository struct {
	mu     sync.RWMutex
	posts  map[int64]domain.Post
	nextID int64
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int64]domain.Post),
		nextID: 1,
	}
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.posts))
	for id := range r.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	posts := make([]*domain.Post, 0, len(ids))
	for _, id := range ids {
		p := r.posts[id]
		posts = append(posts, &p)
	}
	return posts, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, ports.ErrPostNotFound
	}
	return &p, nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = *post
	return nil
}

func (r *PostRepository) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, ports.ErrPostNotFound
	}
	patch.Apply(&p)
	r.posts[id] = p
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return ports.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts), nil
}

// Ping always succeeds; there is nothing to reach.
func (r *PostRepository) Ping(ctx context.Context) error {
	return nil
}

var _ ports.PostRepository = (*PostRepository)(nil)
