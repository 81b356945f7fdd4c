// internal/core/services/ledger.go
package services

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/core/store"
)

// Durable record keys. Each entity slot persists under its own key.
const (
	KeyProducts  = "shop:products"
	KeySales     = "shop:sales"
	KeyExpenses  = "shop:expenses"
	KeyStockOuts = "shop:stockouts"
	KeySettings  = "shop:settings"
)

// Ledger owns the five entity slots and is the only legal write path into
// them. Every mutation runs under one global write lock, persists the
// touched slots, recomputes metrics, and notifies subscribers before the
// lock is released, so readers only ever observe settled state. Paired
// updates (a stock-out and its product decrement) happen inside the same
// critical section.
type Ledger struct {
	mu     sync.RWMutex
	blob   ports.BlobStore
	logger *slog.Logger

	products  *store.Slot[[]domain.Product]
	sales     *store.Slot[[]domain.Sale]
	expenses  *store.Slot[[]domain.Expense]
	stockOuts *store.Slot[[]domain.StockOut]
	settings  *store.Slot[domain.ShopSettings]

	metrics ports.Metrics
	subs    []func(ports.Snapshot, ports.Metrics)
}

// Statically assert that *Ledger implements the Ledger port.
var _ ports.Ledger = (*Ledger)(nil)

// NewLedger loads each record from the blob store, falling back to its
// default (the seed catalog for products, empty history otherwise), wires
// persistence as a slot subscriber, and derives the initial metrics.
func NewLedger(ctx context.Context, blob ports.BlobStore, logger *slog.Logger) *Ledger {
	l := &Ledger{
		blob:      blob,
		logger:    logger.With(slog.String("service", "ledger")),
		products:  store.New(KeyProducts, domain.SeedProducts()),
		sales:     store.New(KeySales, []domain.Sale{}),
		expenses:  store.New(KeyExpenses, []domain.Expense{}),
		stockOuts: store.New(KeyStockOuts, []domain.StockOut{}),
		settings:  store.New(KeySettings, domain.DefaultSettings()),
	}

	attach(ctx, l, l.products)
	attach(ctx, l, l.sales)
	attach(ctx, l, l.expenses)
	attach(ctx, l, l.stockOuts)
	attach(ctx, l, l.settings)

	l.metrics = ComputeMetrics(l.snapshotLocked())

	l.logger.InfoContext(ctx, "ledger loaded",
		slog.Int("products", len(l.products.Get())),
		slog.Int("sales", len(l.sales.Get())),
		slog.Int("expenses", len(l.expenses.Get())),
		slog.Int("stock_outs", len(l.stockOuts.Get())))

	return l
}

// attach loads a slot's record over its default and then subscribes
// persistence. The load happens before the subscription so a defaulted
// value is not immediately written back.
func attach[T any](ctx context.Context, l *Ledger, slot *store.Slot[T]) {
	v := slot.Get()
	if l.blob.Load(ctx, slot.Name(), &v) {
		slot.Set(ctx, v)
	}
	slot.Subscribe(func(ctx context.Context, v T) {
		// Save failures are logged by the adapter and must not abort
		// the mutation that triggered them.
		_ = l.blob.Save(ctx, slot.Name(), v)
	})
}

// AddProduct prepends a new product. ID uniqueness is the caller's
// responsibility.
func (l *Ledger) AddProduct(ctx context.Context, p domain.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p = floorStock(p)
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	l.products.Set(ctx, append([]domain.Product{p}, l.products.Get()...))
	l.commit(ctx)

	l.logger.InfoContext(ctx, "product added",
		slog.String("id", p.ID), slog.String("name", p.Name))
}

// UpdateProduct replaces the product with a matching ID in place. A
// non-matching ID is a no-op.
func (l *Ledger) UpdateProduct(ctx context.Context, p domain.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()

	products := slices.Clone(l.products.Get())
	i := indexByID(products, p.ID)
	if i < 0 {
		l.logger.DebugContext(ctx, "update for unknown product ignored",
			slog.String("id", p.ID))
		return
	}
	p = floorStock(p)
	p.UpdatedAt = time.Now().UTC()
	products[i] = p
	l.products.Set(ctx, products)
	l.commit(ctx)
}

// DeleteProduct removes the product with the given ID. Historical sales
// and stock-outs referencing it are left untouched.
func (l *Ledger) DeleteProduct(ctx context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	products := l.products.Get()
	i := indexByID(products, id)
	if i < 0 {
		return
	}
	l.products.Set(ctx, slices.Delete(slices.Clone(products), i, i+1))
	l.commit(ctx)

	l.logger.InfoContext(ctx, "product deleted", slog.String("id", id))
}

// RecordSale prepends a formal sale and decrements stock for each line
// item, clamped at zero. Items referencing vanished products are skipped.
// The sale append and the stock decrements are one indivisible step.
func (l *Ledger) RecordSale(ctx context.Context, s domain.Sale) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s.Date.IsZero() {
		s.Date = time.Now().UTC()
	}

	products := slices.Clone(l.products.Get())
	touched := false
	for _, it := range s.Items {
		if i := indexByID(products, it.ProductID); i >= 0 {
			products[i] = decrement(ctx, l.logger, products[i], it.Quantity)
			touched = true
		}
	}
	if touched {
		l.products.Set(ctx, products)
	}
	l.sales.Set(ctx, append([]domain.Sale{s}, l.sales.Get()...))
	l.commit(ctx)

	l.logger.InfoContext(ctx, "sale recorded",
		slog.String("id", s.ID),
		slog.Int("items", len(s.Items)),
		slog.String("total", s.Total.String()))
}

// AddExpense appends an expense.
func (l *Ledger) AddExpense(ctx context.Context, e domain.Expense) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	l.expenses.Set(ctx, append(slices.Clone(l.expenses.Get()), e))
	l.commit(ctx)
}

// RecordStockOut appends a stock-out and decrements the matching
// product's stock, clamped at zero, refreshing its timestamp. When no
// product matches, the stock-out is still recorded and no product
// changes. Both updates happen inside one critical section.
func (l *Ledger) RecordStockOut(ctx context.Context, so domain.StockOut) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if so.Date.IsZero() {
		so.Date = time.Now().UTC()
	}

	products := slices.Clone(l.products.Get())
	if i := indexByID(products, so.ProductID); i >= 0 {
		products[i] = decrement(ctx, l.logger, products[i], so.Quantity)
		l.products.Set(ctx, products)
	}
	l.stockOuts.Set(ctx, append(slices.Clone(l.stockOuts.Get()), so))
	l.commit(ctx)

	l.logger.InfoContext(ctx, "stock-out recorded",
		slog.String("id", so.ID),
		slog.String("product_id", so.ProductID),
		slog.String("reason", string(so.Reason)))
}

// UpdateSettings replaces the settings record wholesale.
func (l *Ledger) UpdateSettings(ctx context.Context, s domain.ShopSettings) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.ReturnPolicy.UpdatedAt = time.Now().UTC()
	l.settings.Set(ctx, s)
	l.commit(ctx)
}

// Products returns a copy of the product collection.
func (l *Ledger) Products() []domain.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.products.Get())
}

// Sales returns a copy of the sales history.
func (l *Ledger) Sales() []domain.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.sales.Get())
}

// Expenses returns a copy of the expense history.
func (l *Ledger) Expenses() []domain.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.expenses.Get())
}

// StockOuts returns a copy of the stock-out history.
func (l *Ledger) StockOuts() []domain.StockOut {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.stockOuts.Get())
}

// Settings returns the current settings record.
func (l *Ledger) Settings() domain.ShopSettings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings.Get()
}

// Snapshot returns a settled copy of all five records.
func (l *Ledger) Snapshot() ports.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// Metrics returns the aggregates derived from the latest settled snapshot.
func (l *Ledger) Metrics() ports.Metrics {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.metrics
}

// Subscribe registers fn to run synchronously after every successful
// mutation, inside the write lock.
func (l *Ledger) Subscribe(fn func(ports.Snapshot, ports.Metrics)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}

// commit recomputes metrics from the settled state and notifies
// subscribers. Callers must hold the write lock.
func (l *Ledger) commit(ctx context.Context) {
	snap := l.snapshotLocked()
	l.metrics = ComputeMetrics(snap)
	for _, fn := range l.subs {
		fn(snap, l.metrics)
	}
}

func (l *Ledger) snapshotLocked() ports.Snapshot {
	return ports.Snapshot{
		Products:  slices.Clone(l.products.Get()),
		Sales:     slices.Clone(l.sales.Get()),
		Expenses:  slices.Clone(l.expenses.Get()),
		StockOuts: slices.Clone(l.stockOuts.Get()),
		Settings:  l.settings.Get(),
	}
}

// decrement reduces a product's stock by qty with a floor of zero and
// refreshes its timestamp. The clamp is deliberate: nothing prevents a
// stock-out larger than available stock, the shortfall is only logged.
func decrement(ctx context.Context, logger *slog.Logger, p domain.Product, qty domain.Units) domain.Product {
	left := p.Stock - qty
	if left < 0 {
		logger.DebugContext(ctx, "stock-out exceeds available stock",
			slog.String("product_id", p.ID),
			slog.Int64("available", int64(p.Stock)),
			slog.Int64("requested", int64(qty)),
			slog.Int64("shortfall", int64(qty-p.Stock)))
		left = 0
	}
	p.Stock = left
	p.UpdatedAt = time.Now().UTC()
	return p
}

// floorStock floors negative stock fields at zero. Stored stock is never
// negative, whatever the caller sent.
func floorStock(p domain.Product) domain.Product {
	if p.Stock < 0 {
		p.Stock = 0
	}
	if p.MinStock < 0 {
		p.MinStock = 0
	}
	return p
}

func indexByID(products []domain.Product, id string) int {
	return slices.IndexFunc(products, func(p domain.Product) bool {
		return p.ID == id
	})
}
