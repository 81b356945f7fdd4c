// internal/core/ports/ledger.go
package ports

import (
	"context"

	"github.com/dukahub/duka-be/internal/core/domain"
)

// Ledger is the application service port for the shop's state engine.
// The mutation methods are the only sanctioned write paths; each performs
// its side effect and returns nothing. Failures inside the ledger degrade
// to defaults instead of surfacing as errors.
type Ledger interface {
	AddProduct(ctx context.Context, p domain.Product)
	UpdateProduct(ctx context.Context, p domain.Product)
	DeleteProduct(ctx context.Context, id string)
	RecordSale(ctx context.Context, s domain.Sale)
	AddExpense(ctx context.Context, e domain.Expense)
	RecordStockOut(ctx context.Context, so domain.StockOut)
	UpdateSettings(ctx context.Context, s domain.ShopSettings)

	Products() []domain.Product
	Sales() []domain.Sale
	Expenses() []domain.Expense
	StockOuts() []domain.StockOut
	Settings() domain.ShopSettings

	// Snapshot returns a settled copy of all five records at once.
	Snapshot() Snapshot
	// Metrics returns the aggregates derived from the latest snapshot.
	Metrics() Metrics
	// Subscribe registers fn to run synchronously after every successful
	// mutation, with the settled snapshot and freshly derived metrics.
	Subscribe(fn func(Snapshot, Metrics))
}

// Snapshot is a settled, read-only view of the five entity records.
type Snapshot struct {
	Products  []domain.Product    `json:"products"`
	Sales     []domain.Sale       `json:"sales"`
	Expenses  []domain.Expense    `json:"expenses"`
	StockOuts []domain.StockOut   `json:"stockOuts"`
	Settings  domain.ShopSettings `json:"settings"`
}

// Metrics is the aggregate output of the metrics engine, consumed
// read-only by the presentation layer and the insights collaborator.
type Metrics struct {
	TotalRevenue  domain.Money `json:"totalRevenue"`
	TotalProfit   domain.Money `json:"totalProfit"`
	TotalSales    int          `json:"totalSales"`
	TotalExpenses domain.Money `json:"totalExpenses"`
	LowStockCount int          `json:"lowStockCount"`
}
