package models

// Health status values reported by the monitor
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
	HealthOK        = "ok"
	HealthError     = "error"
)

// HealthSnapshot is the aggregated health of the service and its dependencies
type HealthSnapshot struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	AIService string `json:"ai_service"`
}
