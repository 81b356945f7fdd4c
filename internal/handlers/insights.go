// internal/handlers/insights.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hibiken/asynq"

	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/workers"
)

// InsightsHandler serves the cached insights document and lets clients
// request a refresh. Generation itself runs in the background worker.
type InsightsHandler struct {
	blob   ports.BlobStore
	queue  *asynq.Client
	logger *slog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(blob ports.BlobStore, queue *asynq.Client, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{
		blob:   blob,
		queue:  queue,
		logger: logger.With(slog.String("handler", "insights")),
	}
}

// Get handles GET /api/v1/insights
func (h *InsightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var doc workers.InsightsDocument
	if !h.blob.Load(r.Context(), workers.KeyInsights, &doc) {
		respondError(h.logger, w, http.StatusNotFound, "No insights generated yet")
		return
	}
	respondJSON(h.logger, w, http.StatusOK, doc)
}

// Refresh handles POST /api/v1/insights/refresh
func (h *InsightsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	task, err := workers.NewInsightsRefreshTask(r.Header.Get("X-Request-ID"))
	if err != nil {
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to build refresh task")
		return
	}

	info, err := h.queue.EnqueueContext(r.Context(), task)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to enqueue insights refresh",
			slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusServiceUnavailable, "Failed to queue refresh")
		return
	}

	respondJSON(h.logger, w, http.StatusAccepted, map[string]string{
		"taskId": info.ID,
		"queue":  info.Queue,
	})
}
