package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"hagxwon/internal/health"
	"hagxwon/internal/service"
	"hagxwon/internal/study"
)

// AdminHandler serves the token-gated admin API: login, the dashboard
// aggregate and history export.
type AdminHandler struct {
	authService   *service.AuthService
	reportService *service.ReportService
	store         *study.Store
	streak        *study.StreakTracker
	monitor       *health.Monitor
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *service.AuthService, reportService *service.ReportService, store *study.Store, streak *study.StreakTracker, monitor *health.Monitor) *AdminHandler {
	return &AdminHandler{
		authService:   authService,
		reportService: reportService,
		store:         store,
		streak:        streak,
		monitor:       monitor,
	}
}

// Login exchanges the admin password for a bearer token
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	token, err := h.authService.Login(req.Password)
	switch {
	case errors.Is(err, service.ErrAuthDisabled):
		respondWithError(w, http.StatusServiceUnavailable, "Admin access is not configured", "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid password", "", nil)
	case err != nil:
		respondWithError(w, http.StatusInternalServerError, "Login failed", "Admin login failed", err)
	default:
		respondJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// Dashboard aggregates stats, streak and health in one response
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stats":           h.store.Stats(),
		"streak":          h.streak.Current(),
		"last_study_date": h.streak.LastStudyDate(),
		"active_session":  h.store.ActiveSession(),
		"health":          h.monitor.Snapshot(),
	})
}

// Export streams the study history in the requested format
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="study-history.json"`)
		if err := h.reportService.WriteJSON(w); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Export failed", "JSON export failed", err)
		}
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="study-history.csv"`)
		if err := h.reportService.WriteCSV(w); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Export failed", "CSV export failed", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="study-history.xlsx"`)
		if err := h.reportService.WriteXLSX(w); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Export failed", "XLSX export failed", err)
		}
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown export format", "", nil)
	}
}
