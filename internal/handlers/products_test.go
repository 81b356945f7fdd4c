// internal/handlers/products_test.go
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
	"github.com/dukahub/duka-be/internal/core/services"
	"github.com/dukahub/duka-be/internal/handlers"
	"github.com/dukahub/duka-be/test/helpers"
)

func newTestLedger(t *testing.T) *services.Ledger {
	t.Helper()
	return services.NewLedger(context.Background(), helpers.NewMemStore(), helpers.TestLogger())
}

func TestProductHandler_List(t *testing.T) {
	ledger := newTestLedger(t)
	h := handlers.NewProductHandler(ledger, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, len(domain.SeedProducts()))
}

func TestProductHandler_Create(t *testing.T) {
	ledger := newTestLedger(t)
	h := handlers.NewProductHandler(ledger, helpers.TestLogger())

	body := `{"name":"Maize Flour","price":130,"cost":100,"stock":20,"minStock":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID, "missing ID must be generated")
	assert.Equal(t, "Maize Flour", created.Name)

	assert.Equal(t, created.ID, ledger.Products()[0].ID, "new product is prepended")
}

func TestProductHandler_Create_InvalidBody(t *testing.T) {
	ledger := newTestLedger(t)
	h := handlers.NewProductHandler(ledger, helpers.TestLogger())

	before := len(ledger.Products())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, ledger.Products(), before)
}

func TestProductHandler_Update_PathIDWins(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.AddProduct(context.Background(), helpers.Product("p1", "Maize Flour", 130, 100, 20, 5))
	h := handlers.NewProductHandler(ledger, helpers.TestLogger())

	// The body carries a conflicting ID; the path target must win.
	body := `{"id":"other","name":"Maize Flour 1kg","price":140,"cost":100,"stock":20,"minStock":5}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/p1", strings.NewReader(body))
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Maize Flour 1kg", ledger.Products()[0].Name)
	assert.Equal(t, "p1", ledger.Products()[0].ID)
}

func TestProductHandler_Delete(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.AddProduct(context.Background(), helpers.Product("p1", "Maize Flour", 130, 100, 20, 5))
	h := handlers.NewProductHandler(ledger, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/p1", nil)
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	for _, p := range ledger.Products() {
		assert.NotEqual(t, "p1", p.ID)
	}
}
