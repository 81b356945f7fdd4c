// internal/handlers/export.go
package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// ExportHandler produces downloadable exports of the ledger.
type ExportHandler struct {
	ledger ports.Ledger
	logger *slog.Logger
}

// JSONExportResponse is the JSON export envelope.
type JSONExportResponse struct {
	Snapshot ports.Snapshot `json:"snapshot"`
	Metrics  ports.Metrics  `json:"metrics"`
	Metadata ExportMetadata `json:"metadata"`
}

// ExportMetadata describes an export.
type ExportMetadata struct {
	ExportDate time.Time `json:"exportDate"`
	Products   int       `json:"products"`
	Sales      int       `json:"sales"`
	Expenses   int       `json:"expenses"`
	StockOuts  int       `json:"stockOuts"`
}

// NewExportHandler creates a new export handler.
func NewExportHandler(ledger ports.Ledger, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "export")),
	}
}

// ExportJSON handles GET /api/v1/export/json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	snapshot := h.ledger.Snapshot()

	respondJSON(h.logger, w, http.StatusOK, JSONExportResponse{
		Snapshot: snapshot,
		Metrics:  h.ledger.Metrics(),
		Metadata: ExportMetadata{
			ExportDate: time.Now().UTC(),
			Products:   len(snapshot.Products),
			Sales:      len(snapshot.Sales),
			Expenses:   len(snapshot.Expenses),
			StockOuts:  len(snapshot.StockOuts),
		},
	})
}

// ExportExcel handles GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snapshot := h.ledger.Snapshot()

	data, err := h.generateExcelFile(snapshot)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file", slog.String("error", err.Error()))
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("shop_export_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response", slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.Int("products", len(snapshot.Products)),
		slog.String("filename", filename))
}

func (h *ExportHandler) generateExcelFile(snapshot ports.Snapshot) ([]byte, error) {
	file := xlsx.NewFile()

	if err := h.addProductSheet(file, snapshot.Products); err != nil {
		return nil, err
	}
	if err := h.addSaleSheet(file, snapshot.Sales); err != nil {
		return nil, err
	}
	if err := h.addExpenseSheet(file, snapshot.Expenses); err != nil {
		return nil, err
	}
	if err := h.addStockOutSheet(file, snapshot.StockOuts); err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}
	return buffer.Bytes(), nil
}

func (h *ExportHandler) addProductSheet(file *xlsx.File, products []domain.Product) error {
	sheet, err := addSheet(file, "Products",
		"ID", "Name", "Price", "Cost", "Stock", "Min Stock", "Updated At")
	if err != nil {
		return err
	}
	for _, p := range products {
		addRow(sheet,
			p.ID, p.Name,
			p.Price.StringFixed(2), p.Cost.StringFixed(2),
			strconv.FormatInt(int64(p.Stock), 10),
			strconv.FormatInt(int64(p.MinStock), 10),
			p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (h *ExportHandler) addSaleSheet(file *xlsx.File, sales []domain.Sale) error {
	sheet, err := addSheet(file, "Sales",
		"ID", "Date", "Items", "Total")
	if err != nil {
		return err
	}
	for _, s := range sales {
		addRow(sheet,
			s.ID,
			s.Date.Format("2006-01-02 15:04:05"),
			strconv.Itoa(len(s.Items)),
			s.Total.StringFixed(2))
	}
	return nil
}

func (h *ExportHandler) addExpenseSheet(file *xlsx.File, expenses []domain.Expense) error {
	sheet, err := addSheet(file, "Expenses",
		"ID", "Date", "Category", "Description", "Amount")
	if err != nil {
		return err
	}
	for _, e := range expenses {
		addRow(sheet,
			e.ID,
			e.Date.Format("2006-01-02 15:04:05"),
			e.Category, e.Description,
			e.Amount.StringFixed(2))
	}
	return nil
}

func (h *ExportHandler) addStockOutSheet(file *xlsx.File, stockOuts []domain.StockOut) error {
	sheet, err := addSheet(file, "Stock Outs",
		"ID", "Date", "Product ID", "Quantity", "Reason")
	if err != nil {
		return err
	}
	for _, so := range stockOuts {
		addRow(sheet,
			so.ID,
			so.Date.Format("2006-01-02 15:04:05"),
			so.ProductID,
			strconv.FormatInt(int64(so.Quantity), 10),
			string(so.Reason))
	}
	return nil
}

func addSheet(file *xlsx.File, name string, headers ...string) (*xlsx.Sheet, error) {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet %s: %w", name, err)
	}

	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
	}
	for i := range headers {
		sheet.SetColWidth(i, i, 18)
	}
	return sheet, nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, value := range values {
		row.AddCell().Value = value
	}
}
