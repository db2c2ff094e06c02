package application_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/philly/quillpost/internal/adapters/memory"
	"github.com/philly/quillpost/internal/platform/apperror"
	"github.com/philly/quillpost/internal/platform/eventbus"
	"github.com/philly/quillpost/internal/platform/events"
	"github.com/philly/quillpost/internal/platform/logger"
	"github.com/philly/quillpost/internal/posts/application"
	"github.com/philly/quillpost/internal/posts/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every event published on the bus
type recorder struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (r *recorder) handle(_ context.Context, e eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) topics() []eventbus.Topic {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []eventbus.Topic
	for _, e := range r.events {
		out = append(out, e.Topic)
	}
	return out
}

// failingRepo fails every call with a storage error
type failingRepo struct{ err error }

func (f failingRepo) List(context.Context) ([]*domain.Post, error)          { return nil, f.err }
func (f failingRepo) FindByID(context.Context, int64) (*domain.Post, error) { return nil, f.err }
func (f failingRepo) Create(context.Context, *domain.Post) error            { return f.err }
func (f failingRepo) Update(context.Context, int64, domain.Patch) (*domain.Post, error) {
	return nil, f.err
}
func (f failingRepo) Delete(context.Context, int64) error { return f.err }
func (f failingRepo) Count(context.Context) (int, error)  { return 0, f.err }

func newService(t *testing.T) (*application.PostsService, *eventbus.Bus, *recorder) {
	t.Helper()
	log := logger.NewNoopLogger()
	bus := eventbus.NewBus(log)
	rec := &recorder{}
	for _, topic := range []eventbus.Topic{events.PostCreatedTopic, events.PostUpdatedTopic, events.PostDeletedTopic} {
		bus.Subscribe(topic, rec.handle)
	}
	return application.NewPostsService(memory.NewPostRepository(), bus, log), bus, rec
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetPost(t *testing.T) {
	svc, bus, rec := newService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, application.CreatePostParams{Title: "A", Content: "B", Author: "C"})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.WithinDuration(t, time.Now(), post.Date, time.Minute)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post, got)

	bus.Wait()
	assert.Equal(t, []eventbus.Topic{events.PostCreatedTopic}, rec.topics())
}

func TestCreatePostValidation(t *testing.T) {
	svc, _, _ := newService(t)

	tests := []struct {
		name   string
		params application.CreatePostParams
	}{
		{"missing title", application.CreatePostParams{Content: "B", Author: "C"}},
		{"missing content", application.CreatePostParams{Title: "A", Author: "C"}},
		{"blank author", application.CreatePostParams{Title: "A", Content: "B", Author: " \t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, application.ErrInvalidPostData)
			assert.Equal(t, http.StatusInternalServerError, apperror.StatusOf(err))
			assert.Equal(t, "Error creating post", err.Error())
		})
	}
}

func TestUpdatePost(t *testing.T) {
	svc, bus, rec := newService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, application.CreatePostParams{Title: "A", Content: "B", Author: "C"})
	require.NoError(t, err)

	updated, err := svc.UpdatePost(ctx, post.ID, domain.Patch{Title: strPtr("A2")})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "B", updated.Content)
	assert.Equal(t, "C", updated.Author)
	assert.Equal(t, post.Date, updated.Date)

	_, err = svc.UpdatePost(ctx, post.ID, domain.Patch{Author: strPtr("")})
	assert.ErrorIs(t, err, application.ErrInvalidPostUpdate)

	_, err = svc.UpdatePost(ctx, 999, domain.Patch{Title: strPtr("x")})
	assert.ErrorIs(t, err, application.ErrPostNotFound)
	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))

	unchanged, err := svc.UpdatePost(ctx, post.ID, domain.Patch{})
	require.NoError(t, err)
	assert.Equal(t, "A2", unchanged.Title)

	_, err = svc.UpdatePost(ctx, 999, domain.Patch{})
	assert.ErrorIs(t, err, application.ErrPostNotFound)

	bus.Wait()
	assert.Equal(t, []eventbus.Topic{events.PostCreatedTopic, events.PostUpdatedTopic}, rec.topics())
}

func TestDeletePost(t *testing.T) {
	svc, bus, rec := newService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, application.CreatePostParams{Title: "A", Content: "B", Author: "C"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, post.ID))
	assert.ErrorIs(t, svc.DeletePost(ctx, post.ID), application.ErrPostNotFound)

	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, application.ErrPostNotFound)

	bus.Wait()
	assert.Equal(t, []eventbus.Topic{events.PostCreatedTopic, events.PostDeletedTopic}, rec.topics())
}

func TestEventsFollowCallOrder(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		svc, bus, rec := newService(t)

		post, err := svc.CreatePost(ctx, application.CreatePostParams{Title: "A", Content: "B", Author: "C"})
		require.NoError(t, err)
		_, err = svc.UpdatePost(ctx, post.ID, domain.Patch{Title: strPtr("A2")})
		require.NoError(t, err)
		require.NoError(t, svc.DeletePost(ctx, post.ID))

		bus.Wait()
		require.Equal(t, []eventbus.Topic{
			events.PostCreatedTopic,
			events.PostUpdatedTopic,
			events.PostDeletedTopic,
		}, rec.topics(), "run %d", i)
	}
}

func TestListPosts(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	for _, title := range []string{"1", "2"} {
		_, err := svc.CreatePost(ctx, application.CreatePostParams{Title: title, Content: "c", Author: "a"})
		require.NoError(t, err)
	}

	posts, err = svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].Title)
}

func TestStorageFailures(t *testing.T) {
	log := logger.NewNoopLogger()
	cause := errors.New("connection refused")
	svc := application.NewPostsService(failingRepo{err: cause}, eventbus.NewBus(log), log)
	ctx := context.Background()

	_, err := svc.ListPosts(ctx)
	assert.EqualError(t, err, "Error fetching posts")
	assert.ErrorIs(t, err, cause)

	_, err = svc.GetPost(ctx, 1)
	assert.EqualError(t, err, "Error fetching post")

	_, err = svc.CreatePost(ctx, application.CreatePostParams{Title: "A", Content: "B", Author: "C"})
	assert.EqualError(t, err, "Error creating post")
	assert.ErrorIs(t, err, cause)

	_, err = svc.UpdatePost(ctx, 1, domain.Patch{Title: strPtr("x")})
	assert.EqualError(t, err, "Error updating post")

	err = svc.DeletePost(ctx, 1)
	assert.EqualError(t, err, "Error deleting post")
	assert.Equal(t, http.StatusInternalServerError, apperror.StatusOf(err))
}
