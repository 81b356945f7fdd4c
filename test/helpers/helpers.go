// test/helpers/helpers.go
package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-be/internal/adapters/db"
	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/pkg/jsonutil"
)

// TestRedis represents a test Redis instance.
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestDB represents a containerized Postgres instance for integration tests.
type TestDB struct {
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestLogger returns a test logger, verbose when -v is set.
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestRedis creates a mock Redis instance for testing.
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupTestDB creates a PostgreSQL container and applies migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_shop",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_shop",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    30 * time.Minute,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     10 * time.Second,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		SourcePath: "../../../migrations",
	}
	err = db.RunMigrationsWithRetry(context.Background(), migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// MemStore is an in-memory blob store for unit tests that don't need a
// Redis instance. It honors the load-never-errors contract.
type MemStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// FailSaves makes subsequent saves return err, for exercising the
// save-failures-never-crash path.
func (m *MemStore) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Put stores a raw payload under key, bypassing Save.
func (m *MemStore) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

// Raw returns the raw payload under key.
func (m *MemStore) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return data, ok
}

func (m *MemStore) Load(ctx context.Context, key string, dest any) bool {
	m.mu.Lock()
	data, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return jsonutil.DecodeInto(data, dest)
}

func (m *MemStore) Save(ctx context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = data
	return nil
}

func (m *MemStore) Ping(ctx context.Context) error { return nil }

// Record builders

// Product builds a test product.
func Product(id, name string, price, cost float64, stock, minStock int64) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		Price:     domain.MoneyFromDecimal(decimal.NewFromFloat(price)),
		Cost:      domain.MoneyFromDecimal(decimal.NewFromFloat(cost)),
		Stock:     domain.Units(stock),
		MinStock:  domain.Units(minStock),
		UpdatedAt: time.Now().UTC(),
	}
}

// Sale builds a single-item test sale with an explicit total.
func Sale(id, productID string, qty int64, unitPrice, total float64) domain.Sale {
	return domain.Sale{
		ID: id,
		Items: []domain.SaleItem{{
			ProductID: productID,
			Quantity:  domain.Units(qty),
			Price:     domain.MoneyFromDecimal(decimal.NewFromFloat(unitPrice)),
		}},
		Total: domain.MoneyFromDecimal(decimal.NewFromFloat(total)),
		Date:  time.Now().UTC(),
	}
}

// Expense builds a test expense.
func Expense(id string, amount float64, category string) domain.Expense {
	return domain.Expense{
		ID:       id,
		Amount:   domain.MoneyFromDecimal(decimal.NewFromFloat(amount)),
		Category: category,
		Date:     time.Now().UTC(),
	}
}

// StockOut builds a test stock-out.
func StockOut(id, productID string, qty int64, reason domain.StockOutReason) domain.StockOut {
	return domain.StockOut{
		ID:        id,
		ProductID: productID,
		Quantity:  domain.Units(qty),
		Reason:    reason,
		Date:      time.Now().UTC(),
	}
}

// RequireMoneyEqual asserts two decimal amounts are numerically equal.
func RequireMoneyEqual(t *testing.T, expected float64, actual domain.Money) {
	t.Helper()
	require.True(t, decimal.NewFromFloat(expected).Equal(actual.Decimal),
		"expected %v, got %s", expected, actual.String())
}
