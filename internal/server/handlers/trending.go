// internal/server/handlers/trending.go

package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// TrendingService serves the cached trending lists.
type TrendingService interface {
	Videos(ctx context.Context) (json.RawMessage, error)
	Sounds(ctx context.Context) (json.RawMessage, error)
	Hashtags(ctx context.Context) (json.RawMessage, error)
}

// TrendingHandler handles trending-list HTTP requests.
type TrendingHandler struct {
	service TrendingService
}

// NewTrendingHandler creates a new trending handler.
func NewTrendingHandler(service TrendingService) *TrendingHandler {
	return &TrendingHandler{
		service: service,
	}
}

// GetVideos returns the trending videos list.
func (h *TrendingHandler) GetVideos(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Videos)
}

// GetSounds returns the trending sounds list.
func (h *TrendingHandler) GetSounds(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Sounds)
}

// GetHashtags returns the trending hashtags list.
func (h *TrendingHandler) GetHashtags(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Hashtags)
}

func (h *TrendingHandler) respond(w http.ResponseWriter, r *http.Request, fetch func(context.Context) (json.RawMessage, error)) {
	payload, err := fetch(r.Context())
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to fetch trending data", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}

	if err != nil && code >= 500 {
		log.Printf("HTTP %d: %s: %v", code, message, err)
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
