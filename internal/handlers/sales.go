// internal/handlers/sales.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// SaleHandler handles the sales history and the sale recording path.
type SaleHandler struct {
	ledger ports.Ledger
	logger *slog.Logger
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(ledger ports.Ledger, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "sales")),
	}
}

// List handles GET /api/v1/sales
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.ledger.Sales())
}

// Create handles POST /api/v1/sales
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var s domain.Sale
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	h.ledger.RecordSale(r.Context(), s)
	respondJSON(h.logger, w, http.StatusCreated, s)
}
