// internal/core/domain/money_test.go
package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-be/internal/core/domain"
)

func TestMoney_UnmarshalJSON_CoercesToZero(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain number", input: `120.50`, want: "120.5"},
		{name: "integer", input: `95`, want: "95"},
		{name: "negative", input: `-3.25`, want: "-3.25"},
		{name: "numeric string", input: `"42.10"`, want: "42.1"},
		{name: "padded numeric string", input: `"  17 "`, want: "17"},
		{name: "null", input: `null`, want: "0"},
		{name: "empty string", input: `""`, want: "0"},
		{name: "garbage string", input: `"abc"`, want: "0"},
		{name: "boolean", input: `true`, want: "0"},
		{name: "object", input: `{"amount": 5}`, want: "0"},
		{name: "array", input: `[1,2]`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m domain.Money
			err := json.Unmarshal([]byte(tt.input), &m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoney_UnmarshalJSON_InsideStruct(t *testing.T) {
	// A record with a corrupted price must still decode, with the bad
	// field zeroed and the rest intact.
	var p domain.Product
	payload := `{"id":"p1","name":"Rice","price":"oops","cost":95,"stock":10,"minStock":2}`

	err := json.Unmarshal([]byte(payload), &p)
	require.NoError(t, err)

	assert.Equal(t, "p1", p.ID)
	assert.True(t, p.Price.IsZero())
	assert.True(t, decimal.NewFromInt(95).Equal(p.Cost.Decimal))
	assert.Equal(t, domain.Units(10), p.Stock)
}

func TestMoney_MarshalJSON_BareNumber(t *testing.T) {
	data, err := json.Marshal(domain.NewMoney(120.5))
	require.NoError(t, err)
	assert.Equal(t, "120.5", string(data))
}

func TestUnits_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Units
	}{
		{name: "integer", input: `12`, want: 12},
		{name: "numeric string", input: `"7"`, want: 7},
		{name: "fraction truncates", input: `3.9`, want: 3},
		{name: "null", input: `null`, want: 0},
		{name: "garbage", input: `"lots"`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u domain.Units
			err := json.Unmarshal([]byte(tt.input), &u)
			require.NoError(t, err)
			assert.Equal(t, tt.want, u)
		})
	}
}

func TestMoney_RoundTrip(t *testing.T) {
	orig := domain.NewMoney(99.99)

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded domain.Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, orig.Equal(decoded.Decimal))
}
