// internal/core/domain/stockout.go
package domain

import "time"

// StockOutReason explains why inventory left stock outside the formal
// sale flow. ReasonSale is the only value with special meaning: it marks
// an ad-hoc sale that counts toward revenue and transaction totals. All
// other values are opaque to the engine, and unknown values are accepted
// as-is.
type StockOutReason string

const (
	ReasonSale       StockOutReason = "Sale"
	ReasonDamage     StockOutReason = "Damage"
	ReasonLoss       StockOutReason = "Loss"
	ReasonExpired    StockOutReason = "Expired"
	ReasonAdjustment StockOutReason = "Adjustment"
)

// IsSale reports whether the stock-out represents a sale recorded outside
// the Sale entity.
func (r StockOutReason) IsSale() bool {
	return r == ReasonSale
}

// StockOut records inventory leaving stock. ProductID is a weak reference;
// a stock-out for a vanished product is still valid history.
type StockOut struct {
	ID        string         `json:"id"`
	ProductID string         `json:"productId"`
	Quantity  Units          `json:"quantity"`
	Reason    StockOutReason `json:"reason"`
	Date      time.Time      `json:"date"`
}
