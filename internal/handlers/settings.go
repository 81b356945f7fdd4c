// internal/handlers/settings.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// SettingsHandler handles the shop settings record.
type SettingsHandler struct {
	ledger ports.Ledger
	logger *slog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(ledger ports.Ledger, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "settings")),
	}
}

// Get handles GET /api/v1/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.ledger.Settings())
}

// Put handles PUT /api/v1/settings
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var s domain.ShopSettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.ledger.UpdateSettings(r.Context(), s)
	respondJSON(h.logger, w, http.StatusOK, h.ledger.Settings())
}
