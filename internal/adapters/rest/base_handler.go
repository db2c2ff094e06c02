package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/philly/quillpost/internal/adapters/rest/middleware"
	"github.com/philly/quillpost/internal/platform/apperror"
	"github.com/philly/quillpost/internal/platform/logger"
)

// errBadID marks a path id that is not a positive integer. No post can
// have such an id, so it is reported as not found.
var errBadID = errors.New("invalid id")

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// WriteJSONError writes the {"message": ...} error body
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	middleware.WriteJSONError(w, message, statusCode)
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// WriteMessage writes a {"message": ...} success body
func (h *BaseHandler) WriteMessage(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.WriteJSONResponse(w, r, messageResponse{Message: message}, statusCode)
}

// HandleError converts err to a status and message. AppErrors carry both;
// anything else is an unexpected 500.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		h.logger.Error(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		h.WriteJSONError(w, r, middleware.MessageInternalError, http.StatusInternalServerError)
		return
	}

	status := apperror.StatusOf(appErr)
	if status >= http.StatusInternalServerError {
		h.logger.Warn(r.Context(), "request failed",
			"code", appErr.Code,
			"business_code", appErr.BusinessCode,
			"status", status,
			"details", appErr.Details,
			"error", appErr.Inner,
		)
	}
	h.WriteJSONError(w, r, appErr.Message, status)
}

// ParseID reads the {id} path parameter as a post id
func (h *BaseHandler) ParseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadID, raw)
	}
	return id, nil
}

// formDecoder is implemented by request bodies that can also be read from an
// urlencoded form.
type formDecoder interface {
	fromForm(form url.Values) error
}

// DecodeBody reads a JSON or application/x-www-form-urlencoded body into dst.
// An empty JSON body leaves dst untouched.
func (h *BaseHandler) DecodeBody(r *http.Request, dst formDecoder) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("parse form: %w", err)
		}
		return dst.fromForm(r.PostForm)
	}

	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// formValue returns a pointer to the form value, or nil when key is absent.
func formValue(form url.Values, key string) *string {
	if _, ok := form[key]; !ok {
		return nil
	}
	v := form.Get(key)
	return &v
}
