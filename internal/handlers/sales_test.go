// internal/handlers/sales_test.go
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/handlers"
	"github.com/dukahub/duka-be/test/helpers"
)

func TestSaleHandler_Create_DecrementsStock(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.AddProduct(context.Background(), helpers.Product("p1", "Maize Flour", 130, 100, 20, 5))
	h := handlers.NewSaleHandler(ledger, helpers.TestLogger())

	body := `{"items":[{"productId":"p1","quantity":3,"price":130}],"total":390}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	assert.Equal(t, domain.Units(17), ledger.Products()[0].Stock)
	helpers.RequireMoneyEqual(t, 390, ledger.Metrics().TotalRevenue)
}

func TestSaleHandler_Create_MalformedNumbersCoerced(t *testing.T) {
	ledger := newTestLedger(t)
	h := handlers.NewSaleHandler(ledger, helpers.TestLogger())

	// A garbage total is coerced to zero rather than rejected.
	body := `{"items":[],"total":"oops"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, ledger.Sales(), 1)
	assert.True(t, ledger.Sales()[0].Total.IsZero())
}

func TestSaleHandler_List(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.RecordSale(context.Background(), helpers.Sale("s1", "seed-001", 1, 120, 120))
	h := handlers.NewSaleHandler(ledger, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var sales []domain.Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sales))
	require.Len(t, sales, 1)
	assert.Equal(t, "s1", sales[0].ID)
}
