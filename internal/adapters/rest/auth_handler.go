package rest

import (
	"net/http"

	"github.com/philly/quillpost/internal/users/application"
)

const (
	messageRegistered = "User registered successfully"
	messageLoggedIn   = "Log in successful."
)

// AuthHandler exposes registration and the stateless login check
type AuthHandler struct {
	*BaseHandler
	service *application.AuthService
}

func NewAuthHandler(base *BaseHandler, service *application.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Register creates a user. The response never echoes the credentials.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := h.DecodeBody(r, &req); err != nil {
		h.HandleError(w, r, application.ErrValidationFailed.WithDetails(err.Error()))
		return
	}

	if _, err := h.service.Register(r.Context(), req.Email, req.Password); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteMessage(w, r, messageRegistered, http.StatusCreated)
}

// Login checks the credentials; no session or token is issued
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := h.DecodeBody(r, &req); err != nil {
		h.HandleError(w, r, application.ErrLoginFailed.WithDetails(err.Error()))
		return
	}

	if err := h.service.Login(r.Context(), req.Email, req.Password); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteMessage(w, r, messageLoggedIn, http.StatusCreated)
}
