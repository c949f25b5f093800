package handlers

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"hagxwon/internal/audio"
)

// AudioHandler serves cached pronunciation clips
type AudioHandler struct {
	tts *audio.TTSService
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(tts *audio.TTSService) *AudioHandler {
	return &AudioHandler{tts: tts}
}

// maxTTSTextLength caps requests at what the upstream endpoint accepts
const maxTTSTextLength = 200

// Speak fetches (or serves from cache) an MP3 clip for the given text
func (h *AudioHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "text is required", "", nil)
		return
	}
	if utf8.RuneCountInString(req.Text) > maxTTSTextLength {
		respondWithError(w, http.StatusBadRequest, "text is too long", "", nil)
		return
	}

	path, err := h.tts.ClipPath(r.Context(), req.Text, req.Language)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to fetch audio", "TTS fetch failed", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}
