package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"hagxwon/internal/models"
	"hagxwon/internal/study"
)

// StudyHandler exposes the study store and streak tracker as JSON
type StudyHandler struct {
	store  *study.Store
	streak *study.StreakTracker
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(store *study.Store, streak *study.StreakTracker) *StudyHandler {
	return &StudyHandler{store: store, streak: streak}
}

// StartSession begins a session of the requested type
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type models.SessionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if !req.Type.Valid() {
		respondWithError(w, http.StatusBadRequest, "Unknown session type", "", nil)
		return
	}

	session := h.store.StartSession(req.Type)
	respondJSON(w, http.StatusCreated, session)
}

// EndSession seals the active session. The score is optional.
func (h *StudyHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score *float64 `json:"score"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
			return
		}
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		respondWithError(w, http.StatusBadRequest, "Score must be between 0 and 100", "", nil)
		return
	}

	summary := h.store.EndSession(req.Score)
	if summary == nil {
		respondWithError(w, http.StatusConflict, "No active session", "", nil)
		return
	}

	streak := h.streak.Evaluate(time.Now())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"summary": summary,
		"streak":  streak,
	})
}

// ActiveSession returns the active session plus its elapsed time
func (h *StudyHandler) ActiveSession(w http.ResponseWriter, r *http.Request) {
	session := h.store.ActiveSession()
	if session == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"active": false})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"active":            true,
		"session":           session,
		"elapsed_seconds":   h.store.Elapsed(),
		"elapsed_formatted": h.store.FormattedElapsed(),
	})
}

// RecordAttempt appends one correctness observation
func (h *StudyHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WordID      int64 `json:"word_id"`
		IsCorrect   bool  `json:"is_correct"`
		TimeSpentMs int   `json:"time_spent_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.WordID <= 0 {
		respondWithError(w, http.StatusBadRequest, "word_id is required", "", nil)
		return
	}
	if req.TimeSpentMs < 0 {
		respondWithError(w, http.StatusBadRequest, "time_spent_ms cannot be negative", "", nil)
		return
	}

	record := h.store.RecordAttempt(req.WordID, req.IsCorrect, req.TimeSpentMs)
	streak := h.streak.Evaluate(time.Now())

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"record": record,
		"streak": streak,
	})
}

// Stats returns the derived aggregate statistics
func (h *StudyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Stats())
}

// Streak returns the current streak without evaluating it
func (h *StudyHandler) Streak(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"streak":          h.streak.Current(),
		"last_study_date": h.streak.LastStudyDate(),
	})
}

// History lists past sessions, newest first, with offset/limit paging
func (h *StudyHandler) History(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}

	sessions := h.store.Sessions()
	// Newest first
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}

	total := len(sessions)
	if skip > total {
		skip = total
	}
	end := skip + limit
	if end > total {
		end = total
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":    total,
		"skip":     skip,
		"limit":    limit,
		"sessions": sessions[skip:end],
	})
}

// Reset clears the study history, leaving any active session running
func (h *StudyHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.ResetHistory()
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// queryInt reads an integer query parameter with a default
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
