// internal/core/services/metrics.go
package services

import (
	"github.com/shopspring/decimal"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// ComputeMetrics derives the dashboard aggregates from a settled
// snapshot. It is a pure function: no side effects, and deterministic for
// the same input, so it is recomputed in full after every mutation rather
// than maintained incrementally.
//
// Revenue and profit merge two independent recording paths: formal Sale
// transactions and Sale-reason stock-outs. The two are disjoint by
// construction of the mutation handlers, so nothing is double counted.
// References to vanished products contribute zero and are skipped
// silently.
func ComputeMetrics(snap ports.Snapshot) ports.Metrics {
	byID := make(map[string]domain.Product, len(snap.Products))
	lowStock := 0
	for _, p := range snap.Products {
		byID[p.ID] = p
		if p.LowStock() {
			lowStock++
		}
	}

	// Direct sales: the stored total is authoritative for revenue; line
	// items are consulted only for cost of goods.
	revenue := decimal.Zero
	profit := decimal.Zero
	for _, s := range snap.Sales {
		revenue = revenue.Add(s.Total.Decimal)
		cost := decimal.Zero
		for _, it := range s.Items {
			if p, ok := byID[it.ProductID]; ok {
				cost = cost.Add(p.Cost.Mul(units(it.Quantity)))
			}
		}
		profit = profit.Add(s.Total.Sub(cost))
	}

	transactions := len(snap.Sales)
	for _, so := range snap.StockOuts {
		if !so.Reason.IsSale() {
			continue
		}
		transactions++
		p, ok := byID[so.ProductID]
		if !ok {
			continue
		}
		qty := units(so.Quantity)
		revenue = revenue.Add(p.Price.Mul(qty))
		profit = profit.Add(p.Price.Sub(p.Cost.Decimal).Mul(qty))
	}

	expenses := decimal.Zero
	for _, e := range snap.Expenses {
		expenses = expenses.Add(e.Amount.Decimal)
	}

	return ports.Metrics{
		TotalRevenue:  domain.MoneyFromDecimal(revenue),
		TotalProfit:   domain.MoneyFromDecimal(profit.Sub(expenses)),
		TotalSales:    transactions,
		TotalExpenses: domain.MoneyFromDecimal(expenses),
		LowStockCount: lowStock,
	}
}

func units(u domain.Units) decimal.Decimal {
	return decimal.NewFromInt(int64(u))
}
