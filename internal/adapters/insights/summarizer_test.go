// internal/adapters/insights/summarizer_test.go
package insights_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-be/internal/adapters/insights"
	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/test/helpers"
)

func TestSummarizer_HealthyShop(t *testing.T) {
	s := insights.NewSummarizer(helpers.TestLogger())

	metrics := ports.Metrics{
		TotalRevenue:  domain.NewMoney(300),
		TotalProfit:   domain.NewMoney(120),
		TotalSales:    2,
		TotalExpenses: domain.NewMoney(0),
	}
	products := []domain.Product{
		helpers.Product("p1", "Rice 1kg", 120, 95, 50, 10),
	}

	text, err := s.Summarize(context.Background(), metrics, products, nil)
	require.NoError(t, err)

	assert.Contains(t, text, "300.00")
	assert.Contains(t, text, "2 transactions")
	assert.Contains(t, text, "Stock levels look healthy")
	assert.NotContains(t, text, "negative")
}

func TestSummarizer_LowStockNamesSorted(t *testing.T) {
	s := insights.NewSummarizer(helpers.TestLogger())

	products := []domain.Product{
		helpers.Product("p1", "Sugar 1kg", 150, 118, 2, 10),
		helpers.Product("p2", "Bar Soap", 60, 42, 0, 15),
		helpers.Product("p3", "Rice 1kg", 120, 95, 50, 10),
	}

	text, err := s.Summarize(context.Background(), ports.Metrics{}, products, nil)
	require.NoError(t, err)

	assert.Contains(t, text, "Restock soon: Bar Soap, Sugar 1kg.")
	assert.NotContains(t, text, "Rice")
}

func TestSummarizer_TopSeller(t *testing.T) {
	s := insights.NewSummarizer(helpers.TestLogger())

	products := []domain.Product{
		helpers.Product("p1", "Rice 1kg", 120, 95, 50, 10),
		helpers.Product("p2", "Sugar 1kg", 150, 118, 40, 10),
	}
	sales := []domain.Sale{
		helpers.Sale("s1", "p1", 2, 120, 240),
		helpers.Sale("s2", "p2", 5, 150, 750),
		helpers.Sale("s3", "gone", 9, 10, 90),
	}

	text, err := s.Summarize(context.Background(), ports.Metrics{}, products, sales)
	require.NoError(t, err)

	assert.Contains(t, text, "Best seller so far: Sugar 1kg (5 units)")
}

func TestSummarizer_NegativeProfitWarning(t *testing.T) {
	s := insights.NewSummarizer(helpers.TestLogger())

	metrics := ports.Metrics{
		TotalRevenue:  domain.NewMoney(100),
		TotalProfit:   domain.NewMoney(-40),
		TotalSales:    1,
		TotalExpenses: domain.NewMoney(140),
	}

	text, err := s.Summarize(context.Background(), metrics, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, text, "Profit is currently negative")
}
