// internal/adapters/insights/summarizer.go

// Package insights holds the default implementation of the insights
// collaborator: a local rule-based summarizer. Deployments that plug in
// an external model swap this adapter out behind the same port; either
// way the provider only ever reads the data it is handed.
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// Summarizer turns metrics and raw collections into short advice text.
type Summarizer struct {
	logger *slog.Logger
}

// Statically assert that *Summarizer implements the InsightsProvider port.
var _ ports.InsightsProvider = (*Summarizer)(nil)

// NewSummarizer creates the rule-based provider.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	return &Summarizer{logger: logger.With(slog.String("provider", "summarizer"))}
}

// Summarize produces freeform advice from the computed metrics plus the
// read-only products and sales collections.
func (s *Summarizer) Summarize(ctx context.Context, m ports.Metrics, products []domain.Product, sales []domain.Sale) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Revenue to date is %s across %d transactions, with %s profit after %s of expenses.\n",
		m.TotalRevenue.StringFixed(2), m.TotalSales, m.TotalProfit.StringFixed(2), m.TotalExpenses.StringFixed(2))

	if low := lowStockNames(products); len(low) > 0 {
		fmt.Fprintf(&b, "Restock soon: %s.\n", strings.Join(low, ", "))
	} else {
		b.WriteString("Stock levels look healthy across the catalog.\n")
	}

	if name, qty := topSeller(products, sales); name != "" {
		fmt.Fprintf(&b, "Best seller so far: %s (%d units). Consider keeping extra stock on hand.\n", name, qty)
	}

	if m.TotalProfit.IsNegative() {
		b.WriteString("Profit is currently negative; review pricing or recent expenses.\n")
	}

	s.logger.DebugContext(ctx, "insights generated",
		slog.Int("products", len(products)),
		slog.Int("sales", len(sales)))

	return b.String(), nil
}

func lowStockNames(products []domain.Product) []string {
	var names []string
	for _, p := range products {
		if p.LowStock() {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	return names
}

// topSeller tallies units sold per product across sale line items.
// Vanished products are skipped, matching how the metrics engine treats
// dangling references.
func topSeller(products []domain.Product, sales []domain.Sale) (string, int64) {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	totals := make(map[string]int64)
	for _, s := range sales {
		for _, it := range s.Items {
			if _, ok := names[it.ProductID]; ok {
				totals[it.ProductID] += int64(it.Quantity)
			}
		}
	}

	var bestID string
	var bestQty int64
	for id, qty := range totals {
		if qty > bestQty || (qty == bestQty && id < bestID) {
			bestID, bestQty = id, qty
		}
	}
	if bestID == "" {
		return "", 0
	}
	return names[bestID], bestQty
}
