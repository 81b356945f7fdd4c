// internal/handlers/stockouts.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// StockOutHandler handles the stock-out history.
type StockOutHandler struct {
	ledger ports.Ledger
	logger *slog.Logger
}

// NewStockOutHandler creates a new stock-out handler.
func NewStockOutHandler(ledger ports.Ledger, logger *slog.Logger) *StockOutHandler {
	return &StockOutHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "stockouts")),
	}
}

// List handles GET /api/v1/stockouts
func (h *StockOutHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.ledger.StockOuts())
}

// Create handles POST /api/v1/stockouts
func (h *StockOutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var so domain.StockOut
	if err := json.NewDecoder(r.Body).Decode(&so); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if so.ID == "" {
		so.ID = uuid.NewString()
	}

	h.ledger.RecordStockOut(r.Context(), so)
	respondJSON(h.logger, w, http.StatusCreated, so)
}
