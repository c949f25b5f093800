package handlers

import (
	"net/http"

	"hagxwon/internal/health"
	"hagxwon/internal/models"
)

// HealthHandler reports the latest monitor snapshot
type HealthHandler struct {
	monitor *health.Monitor
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// Health returns the aggregated snapshot. The HTTP status mirrors it so
// load balancers can probe without parsing the body.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.monitor.Snapshot()

	status := http.StatusOK
	if snap.Status != models.HealthHealthy {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, snap)
}
