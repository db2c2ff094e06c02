package middleware

import (
	"encoding/json"
	"net/http"
)

// Messages written by middleware when no handler produced a response
const (
	MessageInternalError    = "Internal server error"
	MessageNotFound         = "Not found"
	MessageMethodNotAllowed = "Method not allowed"
)

// WriteJSONError writes {"message": ...} with status. This is the only error
// body shape the API produces, so handlers and middleware share it.
func WriteJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Ignore encoding errors here as we're already in error handling
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// NotFound is installed as the router's fallback handler
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, MessageNotFound, http.StatusNotFound)
}

// MethodNotAllowed is installed as the router's 405 handler
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, MessageMethodNotAllowed, http.StatusMethodNotAllowed)
}
