package handlers

import (
	"net/http"
	"time"
)

// Check represents the status of a health check.
type Check struct {
	Status  string `json:"status"` // "pass" or "fail"
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string           `json:"status"` // "healthy" or "degraded"
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Timestamp string           `json:"timestamp"`
}

// Health reports the monitor's health: degraded until the first cycle
// completes, or when the latest cycle failed and the snapshot is stale.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]Check)
	healthy := true

	snap := h.store.Snapshot()
	switch {
	case !h.store.Ready():
		checks["poller"] = Check{Status: "fail", Message: "no successful cycle yet"}
		healthy = false
	case snap.Stale:
		checks["poller"] = Check{Status: "fail", Message: "last cycle failed, serving previous snapshot"}
		healthy = false
	default:
		checks["poller"] = Check{Status: "pass"}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	h.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Version:   version,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
