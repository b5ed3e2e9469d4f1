// internal/server/handlers/analysis.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"clipsight/internal/domain/analysis"
)

// Summarizer turns a finished insight bundle into prose.
type Summarizer interface {
	Summarize(ctx context.Context, insights json.RawMessage) (string, error)
}

// AnalysisHandler handles deep-analysis HTTP requests.
type AnalysisHandler struct {
	engine     analysis.Engine
	store      analysis.ReportStore
	eventBus   *nats.Conn
	summarizer Summarizer
	runTimeout time.Duration
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(
	engine analysis.Engine,
	store analysis.ReportStore,
	eventBus *nats.Conn,
	summarizer Summarizer,
	runTimeout time.Duration,
) *AnalysisHandler {
	if runTimeout <= 0 {
		runTimeout = 5 * time.Minute
	}
	return &AnalysisHandler{
		engine:     engine,
		store:      store,
		eventBus:   eventBus,
		summarizer: summarizer,
		runTimeout: runTimeout,
	}
}

// StartAnalysis kicks off a deep analysis run and returns its id. The run
// proceeds in the background; progress streams over the websocket endpoint
// and the finished report is persisted for later retrieval.
func (h *AnalysisHandler) StartAnalysis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoID string `json:"video_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.VideoID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing video_id", nil)
		return
	}

	runID := uuid.New().String()
	go h.runAnalysis(runID, req.VideoID)

	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"id":       runID,
		"video_id": req.VideoID,
		"status":   "running",
	})
}

// runAnalysis drives one run to completion, publishing progress and the
// final outcome on the event bus and persisting the report.
func (h *AnalysisHandler) runAnalysis(runID, videoID string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.runTimeout)
	defer cancel()

	sink := analysis.SinkFunc(func(percent int, message string) {
		h.publishEvent(runID, "progress", map[string]interface{}{
			"percent": percent,
			"message": message,
		})
	})

	result, err := h.engine.Analyze(ctx, videoID, sink)
	if err != nil {
		log.Printf("Analysis %s failed: %v", runID, err)
		h.publishEvent(runID, "failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	report := analysis.Report{
		ID:        runID,
		VideoID:   videoID,
		Result:    *result,
		CreatedAt: time.Now(),
	}
	if err := h.store.SaveReport(ctx, report); err != nil {
		log.Printf("Failed to save report %s: %v", runID, err)
	}

	h.publishEvent(runID, "completed", map[string]interface{}{
		"report_id": runID,
	})
}

// publishEvent publishes a run event to the bus. Delivery is best-effort;
// the report itself is the source of truth.
func (h *AnalysisHandler) publishEvent(runID, event string, payload map[string]interface{}) {
	if h.eventBus == nil {
		return
	}

	payload["type"] = event
	payload["run_id"] = runID
	payload["time"] = time.Now()

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	topic := fmt.Sprintf("analysis.%s.events", runID)
	if err := h.eventBus.Publish(topic, data); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}

// GetAnalysis returns a stored report by id.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing analysis ID", nil)
		return
	}

	report, err := h.store.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, analysis.ErrReportNotFound) {
			respondWithError(w, http.StatusNotFound, "Analysis not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get analysis", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// ListAnalyses returns recent reports for a video.
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing video_id parameter", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reports, err := h.store.FindReportsByVideo(r.Context(), videoID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list analyses", err)
		return
	}

	respondWithJSON(w, http.StatusOK, reports)
}

// SummarizeAnalysis generates a prose summary for a stored report.
func (h *AnalysisHandler) SummarizeAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing analysis ID", nil)
		return
	}
	if h.summarizer == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Summaries are not configured", nil)
		return
	}

	report, err := h.store.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, analysis.ErrReportNotFound) {
			respondWithError(w, http.StatusNotFound, "Analysis not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get analysis", err)
		}
		return
	}

	insightsJSON, err := json.Marshal(report.Result.Insights)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to encode insights", err)
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), insightsJSON)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to generate summary", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"id":      id,
		"summary": summary,
	})
}
