// internal/handlers/export_test.go
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/services"
	"github.com/dukahub/duka-be/internal/handlers"
	"github.com/dukahub/duka-be/test/helpers"
)

func seededExportLedger(t *testing.T) *services.Ledger {
	t.Helper()
	ledger := newTestLedger(t)
	ctx := context.Background()
	ledger.AddProduct(ctx, helpers.Product("p1", "Maize Flour", 130, 100, 20, 5))
	ledger.RecordSale(ctx, helpers.Sale("s1", "p1", 2, 130, 260))
	ledger.AddExpense(ctx, helpers.Expense("e1", 40, "Transport"))
	ledger.RecordStockOut(ctx, helpers.StockOut("so1", "p1", 1, domain.ReasonDamage))
	return ledger
}

func TestExportHandler_ExportJSON(t *testing.T) {
	ledger := seededExportLedger(t)
	h := handlers.NewExportHandler(ledger, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/json", nil)
	rec := httptest.NewRecorder()
	h.ExportJSON(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.JSONExportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, len(domain.SeedProducts())+1, resp.Metadata.Products)
	assert.Equal(t, 1, resp.Metadata.Sales)
	assert.Equal(t, 1, resp.Metadata.Expenses)
	assert.Equal(t, 1, resp.Metadata.StockOuts)
	assert.False(t, resp.Metadata.ExportDate.IsZero())

	helpers.RequireMoneyEqual(t, 260, resp.Metrics.TotalRevenue)
	require.Len(t, resp.Snapshot.Sales, 1)
	assert.Equal(t, "s1", resp.Snapshot.Sales[0].ID)
}

func TestExportHandler_ExportExcel(t *testing.T) {
	ledger := seededExportLedger(t)
	h := handlers.NewExportHandler(ledger, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/excel", nil)
	rec := httptest.NewRecorder()
	h.ExportExcel(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "shop_export_")

	file, err := xlsx.OpenBinary(rec.Body.Bytes())
	require.NoError(t, err)

	names := make([]string, 0, len(file.Sheets))
	for _, sheet := range file.Sheets {
		names = append(names, sheet.Name)
	}
	assert.Equal(t, []string{"Products", "Sales", "Expenses", "Stock Outs"}, names)

	products := file.Sheet["Products"]
	require.NotNil(t, products)
	// Header row plus one row per product.
	assert.Equal(t, len(ledger.Products())+1, products.MaxRow)
}
