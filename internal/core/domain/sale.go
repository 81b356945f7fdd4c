// internal/core/domain/sale.go
package domain

import "time"

// SaleItem is one line of a sale. ProductID is a weak reference: the
// product may have been deleted since, in which case cost lookups treat
// it as zero. Price is a snapshot of the unit price at sale time.
type SaleItem struct {
	ProductID string `json:"productId"`
	Quantity  Units  `json:"quantity"`
	Price     Money  `json:"price"`
}

// Sale is a formal sale transaction. Total is stored independently of the
// line items and is authoritative for revenue; items are only consulted
// for cost-of-goods lookups.
type Sale struct {
	ID    string     `json:"id"`
	Items []SaleItem `json:"items"`
	Total Money      `json:"total"`
	Date  time.Time  `json:"date"`
}
