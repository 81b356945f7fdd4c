// internal/handlers/expenses.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// ExpenseHandler handles the expense history.
type ExpenseHandler struct {
	ledger ports.Ledger
	logger *slog.Logger
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(ledger ports.Ledger, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "expenses")),
	}
}

// List handles GET /api/v1/expenses
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.ledger.Expenses())
}

// Create handles POST /api/v1/expenses
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	h.ledger.AddExpense(r.Context(), e)
	respondJSON(h.logger, w, http.StatusCreated, e)
}
