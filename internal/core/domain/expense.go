// internal/core/domain/expense.go
package domain

import "time"

// Expense is a standalone outgoing amount. It has no relationship to
// products or sales.
type Expense struct {
	ID          string    `json:"id"`
	Amount      Money     `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}
