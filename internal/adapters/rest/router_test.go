package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/philly/quillpost/internal/adapters/memory"
	"github.com/philly/quillpost/internal/adapters/rest"
	"github.com/philly/quillpost/internal/adapters/rest/middleware"
	"github.com/philly/quillpost/internal/platform/eventbus"
	"github.com/philly/quillpost/internal/platform/logger"
	"github.com/philly/quillpost/internal/platform/password"
	postsApp "github.com/philly/quillpost/internal/posts/application"
	usersApp "github.com/philly/quillpost/internal/users/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type post struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, pinger rest.Pinger) *httptest.Server {
	t.Helper()
	log := logger.NewNoopLogger()
	bus := eventbus.NewBus(log)

	hasher, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	base := rest.NewBaseHandler(log)
	router := rest.NewRouter(
		rest.RouterConfig{RequestTimeout: 5 * time.Second},
		rest.NewPostsHandler(base, postsApp.NewPostsService(memory.NewPostRepository(), bus, log)),
		rest.NewAuthHandler(base, usersApp.NewAuthService(memory.NewUserRepository(), hasher, bus, log)),
		rest.NewHealthHandler(base, "test", pinger),
		middleware.NewMetrics("quillpost_test"),
		log,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		bus.Wait()
	})
	return srv
}

func do(t *testing.T, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestPostLifecycleScenario(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp, body := do(t, http.MethodPost, srv.URL+"/posts", `{"title":"A","content":"B","author":"C"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode[post](t, body)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "A", created.Title)
	assert.WithinDuration(t, time.Now(), created.Date, time.Minute)

	postURL := fmt.Sprintf("%s/posts/%d", srv.URL, created.ID)

	resp, body = do(t, http.MethodGet, postURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decode[post](t, body))

	resp, body = do(t, http.MethodPatch, postURL, `{"title":"A2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decode[post](t, body)
	assert.Equal(t, "A2", patched.Title)
	assert.Equal(t, "B", patched.Content)
	assert.Equal(t, "C", patched.Author)

	resp, body = do(t, http.MethodGet, postURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "A2", decode[post](t, body).Title)

	resp, body = do(t, http.MethodDelete, postURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Post deleted successfully"}`, string(body))

	resp, body = do(t, http.MethodGet, postURL, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Post not found"}`, string(body))

	resp, body = do(t, http.MethodDelete, postURL, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Post not found"}`, string(body))
}

func TestListPosts(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp, body := do(t, http.MethodGet, srv.URL+"/posts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	for _, title := range []string{"one", "two", "three"} {
		resp, _ := do(t, http.MethodPost, srv.URL+"/posts", fmt.Sprintf(`{"title":%q,"content":"c","author":"a"}`, title))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/posts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posts := decode[[]post](t, body)
	require.Len(t, posts, 3)
	assert.Equal(t, "one", posts[0].Title)
	assert.Equal(t, "three", posts[2].Title)
	assert.Less(t, posts[0].ID, posts[1].ID)
}

func TestCreatePostFailures(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing author", body: `{"title":"A","content":"B"}`},
		{name: "empty title", body: `{"title":"","content":"B","author":"C"}`},
		{name: "malformed json", body: `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/posts", tt.body)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.JSONEq(t, `{"message":"Error creating post"}`, string(body))
		})
	}
}

func TestCreatePostWithDateAndForm(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp, body := do(t, http.MethodPost, srv.URL+"/posts",
		`{"title":"A","content":"B","author":"C","date":"2023-01-02T03:04:05Z"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), decode[post](t, body).Date.UTC())

	form := url.Values{"title": {"F"}, "content": {"from a form"}, "author": {"browser"}}
	resp, err := http.PostForm(srv.URL+"/posts", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "browser", created.Author)
}

func TestUpdatePostFailures(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp, _ := do(t, http.MethodPost, srv.URL+"/posts", `{"title":"A","content":"B","author":"C"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, http.MethodPatch, srv.URL+"/posts/1", `{"content":""}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Error updating post"}`, string(body))

	resp, body = do(t, http.MethodPatch, srv.URL+"/posts/99", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Post not found"}`, string(body))

	resp, body = do(t, http.MethodPatch, srv.URL+"/posts/1", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "A", decode[post](t, body).Title)
}

func TestNonNumericIDIsNotFound(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		resp, body := do(t, method, srv.URL+"/posts/not-a-number", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
		assert.JSONEq(t, `{"message":"Post not found"}`, string(body))
	}
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	creds := `{"email":"ada@example.com","password":"s3cret"}`

	resp, body := do(t, http.MethodPost, srv.URL+"/register", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, string(body))
	assert.NotContains(t, string(body), "s3cret")

	resp, body = do(t, http.MethodPost, srv.URL+"/register", creds)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Email already registered. Try logging in."}`, string(body))

	resp, body = do(t, http.MethodPost, srv.URL+"/register", `{"email":"","password":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Registration failed."}`, string(body))

	resp, body = do(t, http.MethodPost, srv.URL+"/login", creds)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Log in successful."}`, string(body))

	resp, body = do(t, http.MethodPost, srv.URL+"/login", `{"email":"ada@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Incorrect password."}`, string(body))

	resp, body = do(t, http.MethodPost, srv.URL+"/login", `{"email":"bob@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Email not found."}`, string(body))
}

func TestLoginWithForm(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp, err := http.PostForm(srv.URL+"/register", url.Values{"email": {"f@example.com"}, "password": {"pw"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.PostForm(srv.URL+"/login", url.Values{"email": {"f@example.com"}, "password": {"pw"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp, body := do(t, http.MethodGet, srv.URL+"/health/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)

	resp, body = do(t, http.MethodGet, srv.URL+"/health/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"storage":"up"`)

	down := newTestServer(t, stubPinger{err: errors.New("connection refused")})
	resp, body = do(t, http.MethodGet, down.URL+"/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), `"storage":"down"`)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp, _ := do(t, http.MethodGet, srv.URL+"/posts/7", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `quillpost_test_http_requests_total{method="GET",route="/posts/{id}",status="404"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp, body := do(t, http.MethodGet, srv.URL+"/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Not found"}`, string(body))

	resp, body = do(t, http.MethodPut, srv.URL+"/posts/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Method not allowed"}`, string(body))
}
