// internal/core/domain/settings.go
package domain

import "time"

// ReturnPolicy is the shop's customer-facing return policy text.
type ReturnPolicy struct {
	Enabled   bool      `json:"enabled"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShopSettings is the single settings record. Updates replace it wholesale.
type ShopSettings struct {
	ReturnPolicy ReturnPolicy `json:"returnPolicy"`
}

// DefaultSettings is used when no settings record exists in the store.
func DefaultSettings() ShopSettings {
	return ShopSettings{
		ReturnPolicy: ReturnPolicy{
			Enabled: false,
			Content: "",
		},
	}
}
