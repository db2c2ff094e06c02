package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/philly/quillpost/internal/adapters/rest/middleware"
	"github.com/philly/quillpost/internal/platform/logger"
)

// Messages shown to the browser
const (
	msgLoadPostsFailed  = "Failed to load posts"
	msgFetchPostFailed  = "Error fetching post"
	msgCreatePostFailed = "Error creating post"
	msgUpdatePostFailed = "Error updating post"
	msgDeletePostFailed = "Error deleting post"

	msgEmailExists        = "Email already exists. Try logging in."
	msgRegistrationFailed = "Registration failed."
	msgIncorrectPassword  = "Incorrect password, try again."
	msgEmailUnknown       = "Email doesn't exist."
	msgLoginFailed        = "Login failed."
)

var postFields = []string{"title", "content", "author"}

// Handler serves the HTML pages and forwards form posts to the API
type Handler struct {
	client *APIClient
	views  *Views
	logger logger.Logger
}

func NewHandler(client *APIClient, views *Views, logger logger.Logger) *Handler {
	return &Handler{client: client, views: views, logger: logger}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageHome, nil)
}

func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.client.ListPosts(r.Context())
	if err != nil {
		h.fail(w, r, err, msgLoadPostsFailed)
		return
	}
	h.render(w, r, PageIndex, IndexData{Posts: posts})
}

func (h *Handler) NewPost(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageModify, ModifyData{
		Heading: "New Post",
		Submit:  "Create Post",
		Action:  "/api/posts",
	})
}

func (h *Handler) EditPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.client.GetPost(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, msgFetchPostFailed)
		return
	}
	h.render(w, r, PageModify, ModifyData{
		Heading: "Edit Post",
		Submit:  "Update Post",
		Action:  "/api/posts/" + url.PathEscape(id),
		Post:    post,
	})
}

// CreatePost forwards every submitted post field
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, msgCreatePostFailed)
		return
	}

	fields := make(map[string]string)
	for _, key := range postFields {
		if _, ok := r.PostForm[key]; ok {
			fields[key] = r.PostForm.Get(key)
		}
	}

	if err := h.client.CreatePost(r.Context(), fields); err != nil {
		h.fail(w, r, err, msgCreatePostFailed)
		return
	}
	http.Redirect(w, r, "/posts", http.StatusFound)
}

// UpdatePost forwards only the fields the form filled in, so a blank input
// leaves that field unchanged
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err, msgUpdatePostFailed)
		return
	}

	fields := make(map[string]string)
	for _, key := range postFields {
		if v := r.PostForm.Get(key); v != "" {
			fields[key] = v
		}
	}

	if err := h.client.UpdatePost(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
		h.fail(w, r, err, msgUpdatePostFailed)
		return
	}
	http.Redirect(w, r, "/posts", http.StatusFound)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, msgDeletePostFailed)
		return
	}
	http.Redirect(w, r, "/posts", http.StatusFound)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageLogin, nil)
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageRegister, nil)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.failText(w, r, err, msgRegistrationFailed)
		return
	}

	err := h.client.Register(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusFound)
	case apiStatus(err) == http.StatusBadRequest:
		writeText(w, msgEmailExists, http.StatusOK)
	default:
		h.failText(w, r, err, msgRegistrationFailed)
	}
}

// Login shows the post list on success. Nothing is remembered about the user.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.failText(w, r, err, msgLoginFailed)
		return
	}

	err := h.client.Login(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	switch {
	case err == nil:
	case apiStatus(err) == http.StatusBadRequest:
		writeText(w, msgIncorrectPassword, http.StatusOK)
		return
	case apiStatus(err) == http.StatusUnauthorized:
		writeText(w, msgEmailUnknown, http.StatusOK)
		return
	default:
		h.failText(w, r, err, msgLoginFailed)
		return
	}

	posts, err := h.client.ListPosts(r.Context())
	if err != nil {
		h.failText(w, r, err, msgLoginFailed)
		return
	}
	h.render(w, r, PageIndex, IndexData{Posts: posts})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.Render(w, page, data); err != nil {
		h.logger.Error(r.Context(), "failed to render page", "page", page, "error", err)
		middleware.WriteJSONError(w, middleware.MessageInternalError, http.StatusInternalServerError)
	}
}

// fail reports a post route failure as a JSON 500
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	h.logger.Warn(r.Context(), message, "error", err)
	middleware.WriteJSONError(w, message, http.StatusInternalServerError)
}

// failText reports an auth route failure as a plain-text 500
func (h *Handler) failText(w http.ResponseWriter, r *http.Request, err error, message string) {
	h.logger.Warn(r.Context(), message, "error", err)
	writeText(w, message, http.StatusInternalServerError)
}

func writeText(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// apiStatus returns the API's status for err, or 0 when the API was never reached
func apiStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
