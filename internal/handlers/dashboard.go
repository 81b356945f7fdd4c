// internal/handlers/dashboard.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukahub/duka-be/internal/core/ports"
)

// DashboardHandler serves the derived metrics and the full snapshot.
type DashboardHandler struct {
	ledger ports.Ledger
	logger *slog.Logger
}

// DashboardData is the dashboard response envelope.
type DashboardData struct {
	Metrics   ports.Metrics `json:"metrics"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(ledger ports.Ledger, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, DashboardData{
		Metrics:   h.ledger.Metrics(),
		Timestamp: time.Now().UTC(),
	})
}

// GetSnapshot handles GET /api/v1/dashboard/snapshot
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.ledger.Snapshot())
}
