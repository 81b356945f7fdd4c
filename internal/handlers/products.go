// internal/handlers/products.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// ProductHandler handles product catalog operations.
type ProductHandler struct {
	ledger ports.Ledger
	logger *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(ledger ports.Ledger, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "products")),
	}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.ledger.Products())
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	h.ledger.AddProduct(r.Context(), p)
	respondJSON(h.logger, w, http.StatusCreated, p)
}

// Update handles PUT /api/v1/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// The path is authoritative for the target ID.
	p.ID = r.PathValue("id")

	h.ledger.UpdateProduct(r.Context(), p)
	respondJSON(h.logger, w, http.StatusOK, p)
}

// Delete handles DELETE /api/v1/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.ledger.DeleteProduct(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
