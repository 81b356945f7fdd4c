// internal/core/domain/money.go
package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount that tolerates malformed input. Records come
// from a durable store that may hold partially-migrated or hand-edited
// data, so JSON decoding coerces anything that is not a usable number
// (null, missing, garbage strings, nested values) to zero instead of
// failing. Every numeric field in the ledger goes through this same
// coercion so tolerance behavior never diverges between call sites.
type Money struct {
	decimal.Decimal
}

// NewMoney builds a Money from a float literal. Intended for seeds and tests.
func NewMoney(f float64) Money {
	return Money{decimal.NewFromFloat(f)}
}

// MoneyFromDecimal wraps an exact decimal amount.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// UnmarshalJSON never returns an error: unusable input becomes zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	m.Decimal = coerceDecimal(data)
	return nil
}

// MarshalJSON encodes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// Units is a whole-number quantity (stock on hand, line-item counts) with
// the same coerce-to-zero decoding as Money.
type Units int64

// UnmarshalJSON never returns an error: unusable input becomes zero.
func (u *Units) UnmarshalJSON(data []byte) error {
	*u = Units(coerceDecimal(data).IntPart())
	return nil
}

// coerceDecimal is the shared safe-number helper. It accepts JSON numbers
// and numeric strings; everything else decodes to zero.
func coerceDecimal(data []byte) decimal.Decimal {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return decimal.Zero
	}
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return decimal.Zero
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			return decimal.Zero
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
