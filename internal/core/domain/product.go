// internal/core/domain/product.go
package domain

import "time"

// Product is a single catalog entry. IDs are caller-generated and stable;
// historical sales and stock-outs keep referencing an ID after the product
// is deleted, so nothing here owns those records.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     Money     `json:"price"`
	Cost      Money     `json:"cost"`
	Stock     Units     `json:"stock"`
	MinStock  Units     `json:"minStock"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LowStock reports whether the product is at or below its minimum-stock
// threshold. The boundary is inclusive: stock == minStock counts as low.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// SeedProducts is the catalog a fresh shop starts with when no products
// record exists in the store yet.
func SeedProducts() []Product {
	now := time.Now().UTC()
	return []Product{
		{ID: "seed-001", Name: "Rice 1kg", Price: NewMoney(120), Cost: NewMoney(95), Stock: 50, MinStock: 10, UpdatedAt: now},
		{ID: "seed-002", Name: "Sugar 1kg", Price: NewMoney(150), Cost: NewMoney(118), Stock: 40, MinStock: 10, UpdatedAt: now},
		{ID: "seed-003", Name: "Cooking Oil 500ml", Price: NewMoney(180), Cost: NewMoney(140), Stock: 30, MinStock: 8, UpdatedAt: now},
		{ID: "seed-004", Name: "Wheat Flour 2kg", Price: NewMoney(210), Cost: NewMoney(165), Stock: 25, MinStock: 6, UpdatedAt: now},
		{ID: "seed-005", Name: "Tea Leaves 250g", Price: NewMoney(95), Cost: NewMoney(70), Stock: 35, MinStock: 10, UpdatedAt: now},
		{ID: "seed-006", Name: "Bar Soap", Price: NewMoney(60), Cost: NewMoney(42), Stock: 60, MinStock: 15, UpdatedAt: now},
	}
}
