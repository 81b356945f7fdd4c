// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dukahub/duka-be/internal/adapters/db"
	redis_a "github.com/dukahub/duka-be/internal/adapters/redis_adapter"
	"github.com/dukahub/duka-be/internal/core/domain"
	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/core/services"
	"github.com/dukahub/duka-be/internal/pkg/config"
	"github.com/dukahub/duka-be/internal/pkg/logger"
)

// Seeds the configured store backend with the starter catalog and empty
// histories, so a fresh deployment starts from a known state. With
// -force it overwrites records that already exist.
func main() {
	force := flag.Bool("force", false, "overwrite existing records")
	flag.Parse()

	slogger := logger.Setup(logger.Config{Level: "info", Format: "text"})

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	blob, cleanup, err := buildBlobStore(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if err := seed(ctx, blob, *force, slogger); err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seeding complete", slog.String("backend", cfg.Store.Backend))
}

func seed(ctx context.Context, blob ports.BlobStore, force bool, slogger *slog.Logger) error {
	records := []struct {
		key   string
		value any
	}{
		{services.KeyProducts, domain.SeedProducts()},
		{services.KeySales, []domain.Sale{}},
		{services.KeyExpenses, []domain.Expense{}},
		{services.KeyStockOuts, []domain.StockOut{}},
		{services.KeySettings, domain.DefaultSettings()},
	}

	for _, record := range records {
		if !force {
			var existing any
			if blob.Load(ctx, record.key, &existing) {
				slogger.Info("record exists, skipping",
					slog.String("key", record.key))
				continue
			}
		}
		if err := blob.Save(ctx, record.key, record.value); err != nil {
			return err
		}
		slogger.Info("record seeded", slog.String("key", record.key))
	}
	return nil
}

func buildBlobStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.BlobStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		database, err := db.NewDatabase(ctx, &db.Config{
			Host:           cfg.Database.Host,
			Port:           cfg.Database.Port,
			User:           cfg.Database.User,
			Password:       cfg.Database.Password,
			Database:       cfg.Database.Name,
			SSLMode:        cfg.Database.SSLMode,
			MaxConnections: 2,
			MinConnections: 1,
			ConnectTimeout: cfg.Database.ConnectTimeout,
		}, slogger)
		if err != nil {
			return nil, nil, err
		}

		migrationCfg := &db.MigrationConfig{
			DatabaseURL: cfg.GetDatabaseURL(),
			SourcePath:  cfg.Database.MigrationPath,
		}
		if err := db.RunMigrations(ctx, migrationCfg, slogger); err != nil {
			database.Close()
			return nil, nil, err
		}
		return db.NewBlobStore(database, slogger), database.Close, nil

	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		return redis_a.NewStore(redisClient, slogger), func() { redisClient.Close() }, nil
	}
}
