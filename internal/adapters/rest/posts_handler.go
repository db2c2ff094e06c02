package rest

import (
	"net/http"

	"github.com/philly/quillpost/internal/posts/application"
)

const messagePostDeleted = "Post deleted successfully"

// PostsHandler handles HTTP requests for posts
type PostsHandler struct {
	*BaseHandler
	service *application.PostsService
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(base *BaseHandler, service *application.PostsService) *PostsHandler {
	return &PostsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ListPosts returns every post ordered by id
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostsToAPI(posts), http.StatusOK)
}

// GetPost retrieves a single post by ID
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r)
	if err != nil {
		h.HandleError(w, r, application.ErrPostNotFound)
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToAPI(post), http.StatusOK)
}

// CreatePost creates a new blog post
func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := h.DecodeBody(r, &req); err != nil {
		h.HandleError(w, r, application.ErrInvalidPostData.WithDetails(err.Error()))
		return
	}

	params := application.CreatePostParams{
		Title:   deref(req.Title),
		Content: deref(req.Content),
		Author:  deref(req.Author),
	}
	if req.Date != nil {
		params.Date = *req.Date
	}

	post, err := h.service.CreatePost(r.Context(), params)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToAPI(post), http.StatusCreated)
}

// UpdatePost applies a partial update
func (h *PostsHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r)
	if err != nil {
		h.HandleError(w, r, application.ErrPostNotFound)
		return
	}

	var req postRequest
	if err := h.DecodeBody(r, &req); err != nil {
		h.HandleError(w, r, application.ErrInvalidPostUpdate.WithDetails(err.Error()))
		return
	}

	post, err := h.service.UpdatePost(r.Context(), id, req.patch())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToAPI(post), http.StatusOK)
}

// DeletePost deletes a post
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r)
	if err != nil {
		h.HandleError(w, r, application.ErrPostNotFound)
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteMessage(w, r, messagePostDeleted, http.StatusOK)
}
