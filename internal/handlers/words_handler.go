package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hagxwon/internal/models"
	"hagxwon/internal/words"
)

// WordsHandler proxies the upstream word catalog to the browser. When
// the upstream is unreachable the list endpoint degrades to a small
// built-in sample set with an inline message instead of failing.
type WordsHandler struct {
	client *words.Client
}

// NewWordsHandler creates a new words handler
func NewWordsHandler(client *words.Client) *WordsHandler {
	return &WordsHandler{client: client}
}

// fallbackWords keeps the study UI usable when the catalog is down
var fallbackWords = []models.Word{
	{ID: 1, Korean: "안녕하세요", Romanization: "annyeonghaseyo", English: "hello", TopikLevel: 1},
	{ID: 2, Korean: "감사합니다", Romanization: "gamsahamnida", English: "thank you", TopikLevel: 1},
	{ID: 3, Korean: "사과", Romanization: "sagwa", English: "apple", TopikLevel: 1},
	{ID: 4, Korean: "학교", Romanization: "hakgyo", English: "school", TopikLevel: 1},
	{ID: 5, Korean: "친구", Romanization: "chingu", English: "friend", TopikLevel: 1},
}

// List returns a page of words from the catalog
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 20)

	items, err := h.client.ListWords(r.Context(), skip, limit)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"words":   fallbackWords,
			"message": "Word service unavailable, showing built-in sample words",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"words": items})
}

// Get returns a single word by ID
func (h *WordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid word ID", "", nil)
		return
	}

	word, err := h.client.GetWord(r.Context(), id)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to fetch word", "Word lookup failed", err)
		return
	}
	respondJSON(w, http.StatusOK, word)
}

// Search runs a semantic search against the catalog
func (h *WordsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.Query == "" {
		respondWithError(w, http.StatusBadRequest, "query is required", "", nil)
		return
	}
	if req.Limit < 1 || req.Limit > 50 {
		req.Limit = 10
	}

	results, err := h.client.SemanticSearch(r.Context(), req.Query, req.Limit)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"results": []models.WordSearchResult{},
			"message": "Search unavailable right now",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Practice asks the AI service to generate practice content for a word
func (h *WordsHandler) Practice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid word ID", "", nil)
		return
	}

	var req struct {
		PracticeType string `json:"practice_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.PracticeType == "" {
		req.PracticeType = "multiple_choice"
	}

	content, err := h.client.PracticeContent(r.Context(), id, req.PracticeType)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to generate practice content", "Practice generation failed", err)
		return
	}
	respondJSON(w, http.StatusOK, content)
}
