// internal/core/services/metrics_test.go
package services_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/core/services"
	"github.com/dukahub/duka-be/test/helpers"
)

func TestComputeMetrics_EmptySnapshot(t *testing.T) {
	m := services.ComputeMetrics(ports.Snapshot{})

	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.TotalProfit.IsZero())
	assert.True(t, m.TotalExpenses.IsZero())
	assert.Equal(t, 0, m.TotalSales)
	assert.Equal(t, 0, m.LowStockCount)
}

func TestComputeMetrics_MergesSalesAndSaleStockOuts(t *testing.T) {
	snap := ports.Snapshot{
		Products: []domain.Product{
			helpers.Product("p1", "Rice 1kg", 100, 60, 10, 2),
		},
		Sales: []domain.Sale{
			helpers.Sale("s1", "p1", 1, 100, 100),
		},
		StockOuts: []domain.StockOut{
			helpers.StockOut("so1", "p1", 2, domain.ReasonSale),
		},
	}

	m := services.ComputeMetrics(snap)

	// Sale revenue 100, stock-out revenue 2*100.
	helpers.RequireMoneyEqual(t, 300, m.TotalRevenue)
	// Sale margin 100-60 plus stock-out margin 2*(100-60).
	helpers.RequireMoneyEqual(t, 120, m.TotalProfit)
	assert.Equal(t, 2, m.TotalSales)
}

func TestComputeMetrics_ExpensesReduceProfitOnly(t *testing.T) {
	snap := ports.Snapshot{
		Products: []domain.Product{
			helpers.Product("p1", "Rice 1kg", 100, 60, 10, 2),
		},
		Sales: []domain.Sale{
			helpers.Sale("s1", "p1", 1, 100, 100),
		},
		Expenses: []domain.Expense{
			helpers.Expense("e1", 25, "Transport"),
			helpers.Expense("e2", 5, "Airtime"),
		},
	}

	m := services.ComputeMetrics(snap)

	helpers.RequireMoneyEqual(t, 100, m.TotalRevenue)
	helpers.RequireMoneyEqual(t, 30, m.TotalExpenses)
	helpers.RequireMoneyEqual(t, 10, m.TotalProfit)
}

func TestComputeMetrics_SaleTotalIsAuthoritative(t *testing.T) {
	// The stored total disagrees with items x unit price. Revenue must
	// follow the total; only cost of goods comes from the items.
	snap := ports.Snapshot{
		Products: []domain.Product{
			helpers.Product("p1", "Rice 1kg", 100, 60, 10, 2),
		},
		Sales: []domain.Sale{
			helpers.Sale("s1", "p1", 2, 100, 150),
		},
	}

	m := services.ComputeMetrics(snap)

	helpers.RequireMoneyEqual(t, 150, m.TotalRevenue)
	helpers.RequireMoneyEqual(t, 30, m.TotalProfit)
}

func TestComputeMetrics_VanishedProducts(t *testing.T) {
	t.Run("sale item cost treated as zero", func(t *testing.T) {
		snap := ports.Snapshot{
			Sales: []domain.Sale{
				helpers.Sale("s1", "gone", 1, 80, 80),
			},
		}

		m := services.ComputeMetrics(snap)

		helpers.RequireMoneyEqual(t, 80, m.TotalRevenue)
		helpers.RequireMoneyEqual(t, 80, m.TotalProfit)
		assert.Equal(t, 1, m.TotalSales)
	})

	t.Run("sale stock-out counts transaction but no revenue", func(t *testing.T) {
		snap := ports.Snapshot{
			StockOuts: []domain.StockOut{
				helpers.StockOut("so1", "gone", 3, domain.ReasonSale),
			},
		}

		m := services.ComputeMetrics(snap)

		assert.True(t, m.TotalRevenue.IsZero())
		assert.True(t, m.TotalProfit.IsZero())
		assert.Equal(t, 1, m.TotalSales)
	})
}

func TestComputeMetrics_NonSaleStockOutsIgnored(t *testing.T) {
	snap := ports.Snapshot{
		Products: []domain.Product{
			helpers.Product("p1", "Rice 1kg", 100, 60, 10, 2),
		},
		StockOuts: []domain.StockOut{
			helpers.StockOut("so1", "p1", 2, domain.ReasonDamage),
			helpers.StockOut("so2", "p1", 1, domain.ReasonExpired),
		},
	}

	m := services.ComputeMetrics(snap)

	assert.True(t, m.TotalRevenue.IsZero())
	assert.Equal(t, 0, m.TotalSales)
}

func TestComputeMetrics_LowStockCount(t *testing.T) {
	snap := ports.Snapshot{
		Products: []domain.Product{
			helpers.Product("p1", "Rice 1kg", 100, 60, 10, 2),
			helpers.Product("p2", "Sugar 1kg", 150, 118, 5, 5),
			helpers.Product("p3", "Oil 500ml", 180, 140, 0, 8),
		},
	}

	assert.Equal(t, 2, services.ComputeMetrics(snap).LowStockCount)
}

func TestComputeMetrics_Pure(t *testing.T) {
	snap := ports.Snapshot{
		Products: []domain.Product{
			helpers.Product("p1", "Rice 1kg", 100, 60, 10, 2),
		},
		Sales: []domain.Sale{
			helpers.Sale("s1", "p1", 1, 100, 100),
		},
		StockOuts: []domain.StockOut{
			helpers.StockOut("so1", "p1", 1, domain.ReasonSale),
		},
	}

	before, err := json.Marshal(snap)
	require.NoError(t, err)

	first := services.ComputeMetrics(snap)
	second := services.ComputeMetrics(snap)

	after, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "input must not be mutated")
	assert.Equal(t, first, second, "same input must give same output")
}
