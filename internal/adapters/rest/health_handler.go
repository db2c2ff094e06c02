package rest

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	*BaseHandler
	version string
	storage Pinger
}

func NewHealthHandler(base *BaseHandler, version string, storage Pinger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     version,
		storage:     storage,
	}
}

// GetLiveness is a lightweight check with no external dependencies
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, healthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}, http.StatusOK)
}

// GetReadiness pings the storage backend
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := healthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Checks:    map[string]string{"storage": "up"},
	}
	httpStatus := http.StatusOK

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn(r.Context(), "readiness check failed", "error", err)
		status.Status = "unhealthy"
		status.Checks["storage"] = "down"
		httpStatus = http.StatusServiceUnavailable
	}

	h.WriteJSONResponse(w, r, status, httpStatus)
}
