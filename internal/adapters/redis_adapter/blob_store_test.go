// internal/adapters/redis_adapter/blob_store_test.go
package redis_a_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/dukahub/duka-be/internal/adapters/redis_adapter"
	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/test/helpers"
)

func setupStore(t *testing.T) (*redis_a.Store, *helpers.TestRedis) {
	t.Helper()
	tr := helpers.SetupTestRedis(t)
	return redis_a.NewStore(tr.Client, helpers.TestLogger()), tr
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	products := []domain.Product{
		helpers.Product("p1", "Rice 1kg", 120, 95, 50, 10),
		helpers.Product("p2", "Sugar 1kg", 150, 118, 40, 10),
	}
	require.NoError(t, store.Save(ctx, "shop:products", products))

	var loaded []domain.Product
	require.True(t, store.Load(ctx, "shop:products", &loaded))
	require.Len(t, loaded, 2)
	assert.Equal(t, "p1", loaded[0].ID)
	helpers.RequireMoneyEqual(t, 120, loaded[0].Price)
	assert.Equal(t, domain.Units(50), loaded[0].Stock)
}

func TestStore_LoadMissingKey(t *testing.T) {
	store, _ := setupStore(t)

	loaded := []domain.Product{helpers.Product("keep", "Kept", 1, 1, 1, 1)}
	ok := store.Load(context.Background(), "shop:absent", &loaded)

	assert.False(t, ok)
	assert.Equal(t, "keep", loaded[0].ID, "dest must be untouched")
}

func TestStore_LoadMalformedPayload(t *testing.T) {
	store, tr := setupStore(t)

	require.NoError(t, tr.Server.Set("shop:products", `{"not":"a list"}`))

	var loaded []domain.Product
	assert.False(t, store.Load(context.Background(), "shop:products", &loaded))
	assert.Nil(t, loaded)
}

func TestStore_SaveReplacesWholesale(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "shop:expenses", []domain.Expense{
		helpers.Expense("e1", 10, "Transport"),
		helpers.Expense("e2", 20, "Rent"),
	}))
	require.NoError(t, store.Save(ctx, "shop:expenses", []domain.Expense{
		helpers.Expense("e3", 5, "Airtime"),
	}))

	var loaded []domain.Expense
	require.True(t, store.Load(ctx, "shop:expenses", &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, "e3", loaded[0].ID)
}

func TestStore_SaveNoTTL(t *testing.T) {
	store, tr := setupStore(t)

	require.NoError(t, store.Save(context.Background(), "shop:settings", domain.DefaultSettings()))

	assert.Equal(t, int64(0), tr.Server.TTL("shop:settings").Nanoseconds(),
		"records are durable state, never expiring")
}

func TestStore_Ping(t *testing.T) {
	store, tr := setupStore(t)

	assert.NoError(t, store.Ping(context.Background()))

	tr.Server.Close()
	assert.Error(t, store.Ping(context.Background()))
}
