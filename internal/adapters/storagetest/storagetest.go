// Package storagetest is a contract suite every storage backend must pass.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postsDomain "github.com/philly/quillpost/internal/posts/domain"
	postsPorts "github.com/philly/quillpost/internal/posts/ports"
	usersDomain "github.com/philly/quillpost/internal/users/domain"
	usersPorts "github.com/philly/quillpost/internal/users/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stores is one freshly emptied backend instance.
type Stores struct {
	Posts postsPorts.PostRepository
	Users usersPorts.UserRepository
}

// Factory returns empty stores for a single subtest. Cleanup should be
// registered with t.Cleanup.
type Factory func(t *testing.T) Stores

// Run executes the whole suite against the backend produced by newStores.
func Run(t *testing.T, newStores Factory) {
	tests := []struct {
		name string
		fn   func(*testing.T, Stores)
	}{
		{"post round trip", testPostRoundTrip},
		{"list is ordered by id", testListOrdered},
		{"ids are never reused", testIDsNotReused},
		{"partial update", testPartialUpdate},
		{"missing ids", testMissingIDs},
		{"delete twice", testDeleteTwice},
		{"count", testCount},
		{"user round trip", testUserRoundTrip},
		{"unknown email", testUnknownEmail},
		{"duplicate email", testDuplicateEmail},
		{"concurrent duplicate email", testConcurrentDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStores(t))
		})
	}
}

func newPost(t *testing.T, title string) *postsDomain.Post {
	t.Helper()
	p, err := postsDomain.NewPost(title, "content of "+title, "author", time.Time{})
	require.NoError(t, err)
	return p
}

func testPostRoundTrip(t *testing.T, s Stores) {
	ctx := context.Background()
	date := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
	p, err := postsDomain.NewPost("A", "B", "C", date)
	require.NoError(t, err)

	require.NoError(t, s.Posts.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := s.Posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Content)
	assert.Equal(t, "C", got.Author)
	assert.WithinDuration(t, date, got.Date, time.Millisecond)
}

func testListOrdered(t *testing.T, s Stores) {
	ctx := context.Background()

	posts, err := s.Posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	var ids []int64
	for _, title := range []string{"first", "second", "third"} {
		p := newPost(t, title)
		require.NoError(t, s.Posts.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	posts, err = s.Posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i, p := range posts {
		assert.Equal(t, ids[i], p.ID)
	}
	assert.Equal(t, "first", posts[0].Title)
	assert.Equal(t, "third", posts[2].Title)
}

func testIDsNotReused(t *testing.T, s Stores) {
	ctx := context.Background()

	a := newPost(t, "a")
	require.NoError(t, s.Posts.Create(ctx, a))
	require.NoError(t, s.Posts.Delete(ctx, a.ID))

	b := newPost(t, "b")
	require.NoError(t, s.Posts.Create(ctx, b))
	assert.Greater(t, b.ID, a.ID)
}

func testPartialUpdate(t *testing.T, s Stores) {
	ctx := context.Background()
	p := newPost(t, "A")
	require.NoError(t, s.Posts.Create(ctx, p))

	title := "A2"
	updated, err := s.Posts.Update(ctx, p.ID, postsDomain.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, p.Content, updated.Content)
	assert.Equal(t, p.Author, updated.Author)
	assert.WithinDuration(t, p.Date, updated.Date, time.Millisecond)

	got, err := s.Posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, p.Content, got.Content)

	content, author := "new content", "someone else"
	updated, err = s.Posts.Update(ctx, p.ID, postsDomain.Patch{Content: &content, Author: &author})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, content, updated.Content)
	assert.Equal(t, author, updated.Author)
}

func testMissingIDs(t *testing.T, s Stores) {
	ctx := context.Background()
	title := "x"

	_, err := s.Posts.FindByID(ctx, 4242)
	assert.ErrorIs(t, err, postsPorts.ErrPostNotFound)

	_, err = s.Posts.Update(ctx, 4242, postsDomain.Patch{Title: &title})
	assert.ErrorIs(t, err, postsPorts.ErrPostNotFound)

	assert.ErrorIs(t, s.Posts.Delete(ctx, 4242), postsPorts.ErrPostNotFound)
}

func testDeleteTwice(t *testing.T, s Stores) {
	ctx := context.Background()
	p := newPost(t, "doomed")
	require.NoError(t, s.Posts.Create(ctx, p))

	require.NoError(t, s.Posts.Delete(ctx, p.ID))
	assert.ErrorIs(t, s.Posts.Delete(ctx, p.ID), postsPorts.ErrPostNotFound)

	_, err := s.Posts.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, postsPorts.ErrPostNotFound)
}

func testCount(t *testing.T, s Stores) {
	ctx := context.Background()

	n, err := s.Posts.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.Posts.Create(ctx, newPost(t, "one")))
	require.NoError(t, s.Posts.Create(ctx, newPost(t, "two")))

	n, err = s.Posts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func testUserRoundTrip(t *testing.T, s Stores) {
	ctx := context.Background()
	u, err := usersDomain.NewUser("ada@example.com", "$2a$04$hash")
	require.NoError(t, err)

	require.NoError(t, s.Users.Create(ctx, u))

	got, err := s.Users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
}

func testUnknownEmail(t *testing.T, s Stores) {
	ctx := context.Background()
	u, err := usersDomain.NewUser("ada@example.com", "$2a$04$hash")
	require.NoError(t, err)
	require.NoError(t, s.Users.Create(ctx, u))

	got, err := s.Users.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Users.FindByEmail(ctx, "ada@example")
	require.NoError(t, err)
	assert.Nil(t, got, "lookups are exact match")
}

func testDuplicateEmail(t *testing.T, s Stores) {
	ctx := context.Background()
	first, err := usersDomain.NewUser("dup@example.com", "$2a$04$first")
	require.NoError(t, err)
	second, err := usersDomain.NewUser("dup@example.com", "$2a$04$second")
	require.NoError(t, err)

	require.NoError(t, s.Users.Create(ctx, first))
	assert.ErrorIs(t, s.Users.Create(ctx, second), usersPorts.ErrEmailTaken)

	got, err := s.Users.FindByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "$2a$04$first", got.PasswordHash)
}

func testConcurrentDuplicateEmail(t *testing.T, s Stores) {
	ctx := context.Background()
	const writers = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		taken   int
		unknown []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := usersDomain.NewUser("race@example.com", "$2a$04$hash")
			if err == nil {
				err = s.Users.Create(ctx, u)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, usersPorts.ErrEmailTaken):
				taken++
			default:
				unknown = append(unknown, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, unknown)
	assert.Equal(t, 1, ok)
	assert.Equal(t, writers-1, taken)
}

