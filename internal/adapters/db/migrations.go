// internal/adapters/db/migrations.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationConfig holds migration configuration.
type MigrationConfig struct {
	DatabaseURL string
	SourcePath  string
}

// RunMigrations applies all pending migrations from the file source.
func RunMigrations(ctx context.Context, config *MigrationConfig, logger *slog.Logger) error {
	if config == nil {
		return fmt.Errorf("migration config is required")
	}

	m, err := migrate.New("file://"+config.SourcePath, config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migrations up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("migrations applied",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty))
	return nil
}

// RunMigrationsWithRetry retries migrations with a linear backoff, for
// startup races against a database that is still coming up.
func RunMigrationsWithRetry(ctx context.Context, config *MigrationConfig, logger *slog.Logger, attempts int) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i) * 2 * time.Second):
			}
		}
		if lastErr = RunMigrations(ctx, config, logger); lastErr == nil {
			return nil
		}
		logger.Warn("migration attempt failed",
			slog.Int("attempt", i+1),
			slog.String("error", lastErr.Error()))
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", attempts, lastErr)
}
