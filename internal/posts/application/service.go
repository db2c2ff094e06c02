package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/philly/quillpost/internal/platform/apperror"
	"github.com/philly/quillpost/internal/platform/eventbus"
	"github.com/philly/quillpost/internal/platform/events"
	"github.com/philly/quillpost/internal/platform/logger"
	"github.com/philly/quillpost/internal/posts/domain"
	"github.com/philly/quillpost/internal/posts/ports"
)

// Error definitions for service operations. Validation failures carry 500
// because the public API reports them the same way as storage failures.
var (
	ErrPostNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePostNotFound,
		"Post not found",
		http.StatusNotFound,
	)

	ErrInvalidPostData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidPostData,
		"Error creating post",
		http.StatusInternalServerError,
	)

	ErrInvalidPostUpdate = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidPostData,
		"Error updating post",
		http.StatusInternalServerError,
	)

	ErrListPosts = storageError("Error fetching posts")
	ErrGetPost   = storageError("Error fetching post")
	ErrCreate    = storageError("Error creating post")
	ErrUpdate    = storageError("Error updating post")
	ErrDelete    = storageError("Error deleting post")
)

func storageError(message string) *apperror.AppError {
	return apperror.New(
		apperror.CodeStorageUnavailable,
		apperror.BusinessCodeGeneral,
		message,
		http.StatusInternalServerError,
	)
}

// PostsService handles post-related business logic
type PostsService struct {
	repo     ports.PostRepository
	eventBus *eventbus.Bus
	logger   logger.Logger
}

// NewPostsService creates a new posts service
func NewPostsService(
	repo ports.PostRepository,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *PostsService {
	return &PostsService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreatePostParams contains parameters for creating a new post
type CreatePostParams struct {
	Title   string
	Content string
	Author  string
	Date    time.Time // zero means "now"
}

// CreatePost validates and stores a new blog post
func (s *PostsService) CreatePost(ctx context.Context, params CreatePostParams) (*domain.Post, error) {
	post, err := domain.NewPost(params.Title, params.Content, params.Author, params.Date)
	if err != nil {
		return nil, ErrInvalidPostData.WithDetails(err.Error())
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error(ctx, "failed to create post", "error", err)
		return nil, ErrCreate.WithInner(err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.PostCreatedTopic,
		Payload: events.PostCreatedEvent{
			PostID:     post.ID,
			Title:      post.Title,
			Author:     post.Author,
			OccurredAt: time.Now(),
		},
	})

	return post, nil
}

// UpdatePost applies a partial update. An empty patch returns the post
// unchanged.
func (s *PostsService) UpdatePost(ctx context.Context, id int64, patch domain.Patch) (*domain.Post, error) {
	if err := patch.Validate(); err != nil {
		return nil, ErrInvalidPostUpdate.WithDetails(err.Error())
	}

	if patch.IsEmpty() {
		return s.GetPost(ctx, id)
	}

	post, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to update post", "error", err, "postID", id)
		return nil, ErrUpdate.WithInner(err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.PostUpdatedTopic,
		Payload: events.PostUpdatedEvent{
			PostID:     id,
			Fields:     patch.Fields(),
			OccurredAt: time.Now(),
		},
	})

	return post, nil
}

// DeletePost removes a post from the system
func (s *PostsService) DeletePost(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to delete post", "error", err, "postID", id)
		return ErrDelete.WithInner(err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.PostDeletedTopic,
		Payload: events.PostDeletedEvent{
			PostID:     id,
			OccurredAt: time.Now(),
		},
	})

	return nil
}

// GetPost retrieves a post by ID
func (s *PostsService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to find post", "error", err, "postID", id)
		return nil, ErrGetPost.WithInner(err)
	}
	return post, nil
}

// ListPosts retrieves every post in ascending ID order
func (s *PostsService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list posts", "error", err)
		return nil, ErrListPosts.WithInner(err)
	}
	return posts, nil
}
