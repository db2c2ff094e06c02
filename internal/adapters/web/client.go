// Package web is the server-rendered front end. It holds no state of its own:
// every page is built from calls to the JSON API.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/philly/quillpost/internal/platform/logger"
)

// Post mirrors the API's post body
type Post struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// APIError is any response outside the status the call expected
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Message)
}

// ClientConfig configures the API client
type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// APIClient calls the JSON API. Only GETs are retried; a retried POST could
// create a post twice.
type APIClient struct {
	baseURL string
	http    *retryablehttp.Client
}

type idempotentKey struct{}

func NewAPIClient(cfg ClientConfig, log logger.Logger) *APIClient {
	c := retryablehttp.NewClient()
	c.HTTPClient.Timeout = cfg.Timeout
	c.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		c.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		c.RetryWaitMax = cfg.RetryWaitMax
	}
	c.CheckRetry = retryIdempotent
	c.Logger = leveledLogger{log: log}

	return &APIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    c,
	}
}

func retryIdempotent(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if idempotent, _ := ctx.Value(idempotentKey{}).(bool); !idempotent {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func (c *APIClient) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *APIClient) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, http.StatusOK, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *APIClient) CreatePost(ctx context.Context, fields map[string]string) error {
	return c.do(ctx, http.MethodPost, "/posts", fields, http.StatusCreated, nil)
}

func (c *APIClient) UpdatePost(ctx context.Context, id string, fields map[string]string) error {
	return c.do(ctx, http.MethodPatch, "/posts/"+url.PathEscape(id), fields, http.StatusOK, nil)
}

func (c *APIClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, http.StatusOK, nil)
}

func (c *APIClient) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/register", body, http.StatusCreated, nil)
}

func (c *APIClient) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/login", body, http.StatusCreated, nil)
}

// do sends body as JSON and decodes the response into out when the status
// is want. Any other status becomes an *APIError.
func (c *APIClient) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
	}
	if method == http.MethodGet {
		ctx = context.WithValue(ctx, idempotentKey{}, true)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}

// leveledLogger adapts logger.Logger to retryablehttp.LeveledLogger
type leveledLogger struct {
	log logger.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...any) {
	l.log.Error(context.Background(), msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...any) {
	l.log.Info(context.Background(), msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...any) {
	l.log.Debug(context.Background(), msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...any) {
	l.log.Warn(context.Background(), msg, keysAndValues...)
}

var _ retryablehttp.LeveledLogger = leveledLogger{}
