// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/dukahub/duka-be/internal/adapters/db"
	redis_a "github.com/dukahub/duka-be/internal/adapters/redis_adapter"
	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/core/services"
	"github.com/dukahub/duka-be/internal/handlers"
	"github.com/dukahub/duka-be/internal/handlers/middleware"
	"github.com/dukahub/duka-be/internal/pkg/config"
	"github.com/dukahub/duka-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.Setup(logger.Config{Level: "debug", Format: "json"})

	slogger.Info("starting duka shop ledger",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.Setup(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		AddSource:   cfg.App.Debug,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("store_backend", cfg.Store.Backend),
	)

	ctx := context.Background()

	if cfg.AWS.SecretName != "" {
		sm, err := config.NewAWSSecretsManager(ctx, cfg.AWS.Region, cfg.AWS.SecretName, slogger)
		if err != nil {
			slogger.Error("failed to init secrets manager", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := cfg.ApplySecrets(ctx, sm); err != nil {
			slogger.Error("failed to apply secrets", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies.
type dependencies struct {
	database    *db.Database
	redisClient *redis.Client
	asynqClient *asynq.Client

	blob   ports.BlobStore
	ledger ports.Ledger

	productHandler   *handlers.ProductHandler
	saleHandler      *handlers.SaleHandler
	expenseHandler   *handlers.ExpenseHandler
	stockOutHandler  *handlers.StockOutHandler
	settingsHandler  *handlers.SettingsHandler
	dashboardHandler *handlers.DashboardHandler
	insightsHandler  *handlers.InsightsHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	blob, err := buildBlobStore(ctx, cfg, slogger, deps)
	if err != nil {
		return nil, err
	}
	deps.blob = blob

	deps.ledger = services.NewLedger(ctx, blob, slogger)

	slogger.Info("initializing task queue client",
		slog.String("redis_addr", cfg.Asynq.RedisAddr))
	deps.asynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	})

	deps.productHandler = handlers.NewProductHandler(deps.ledger, slogger)
	deps.saleHandler = handlers.NewSaleHandler(deps.ledger, slogger)
	deps.expenseHandler = handlers.NewExpenseHandler(deps.ledger, slogger)
	deps.stockOutHandler = handlers.NewStockOutHandler(deps.ledger, slogger)
	deps.settingsHandler = handlers.NewSettingsHandler(deps.ledger, slogger)
	deps.dashboardHandler = handlers.NewDashboardHandler(deps.ledger, slogger)
	deps.insightsHandler = handlers.NewInsightsHandler(blob, deps.asynqClient, slogger)
	deps.exportHandler = handlers.NewExportHandler(deps.ledger, slogger)
	deps.healthHandler = handlers.NewHealthHandler(blob, cfg.App.Version, cfg.App.Environment, slogger)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

// buildBlobStore creates the configured durable record store backend.
func buildBlobStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger, deps *dependencies) (ports.BlobStore, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		slogger.Info("connecting to database",
			slog.String("host", cfg.Database.Host),
			slog.String("database", cfg.Database.Name))

		database, err := db.NewDatabase(ctx, &db.Config{
			Host:               cfg.Database.Host,
			Port:               cfg.Database.Port,
			User:               cfg.Database.User,
			Password:           cfg.Database.Password,
			Database:           cfg.Database.Name,
			SSLMode:            cfg.Database.SSLMode,
			MaxConnections:     cfg.Database.MaxConnections,
			MinConnections:     cfg.Database.MinConnections,
			MaxConnLifetime:    cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
			HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
			ConnectTimeout:     cfg.Database.ConnectTimeout,
			EnableQueryLogging: cfg.Database.EnableQueryLogging,
		}, slogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		deps.database = database

		migrationCfg := &db.MigrationConfig{
			DatabaseURL: cfg.GetDatabaseURL(),
			SourcePath:  cfg.Database.MigrationPath,
		}
		if err := db.RunMigrationsWithRetry(ctx, migrationCfg, slogger, 5); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		return db.NewBlobStore(database, slogger), nil

	default:
		slogger.Info("connecting to Redis",
			slog.String("addr", cfg.GetRedisAddr()))

		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		deps.redisClient = redisClient

		return redis_a.NewStore(redisClient, slogger), nil
	}
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	var handler http.Handler = mux

	// Apply middleware in reverse order (innermost first)
	handler = middleware.Logger(slogger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(slogger)(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	registerRoutes(mux, deps)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	// Health and readiness endpoints
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)

	// Product catalog
	mux.HandleFunc("GET "+apiV1+"/products", deps.productHandler.List)
	mux.HandleFunc("POST "+apiV1+"/products", deps.productHandler.Create)
	mux.HandleFunc("PUT "+apiV1+"/products/{id}", deps.productHandler.Update)
	mux.HandleFunc("DELETE "+apiV1+"/products/{id}", deps.productHandler.Delete)

	// Sales
	mux.HandleFunc("GET "+apiV1+"/sales", deps.saleHandler.List)
	mux.HandleFunc("POST "+apiV1+"/sales", deps.saleHandler.Create)

	// Expenses
	mux.HandleFunc("GET "+apiV1+"/expenses", deps.expenseHandler.List)
	mux.HandleFunc("POST "+apiV1+"/expenses", deps.expenseHandler.Create)

	// Stock-outs
	mux.HandleFunc("GET "+apiV1+"/stockouts", deps.stockOutHandler.List)
	mux.HandleFunc("POST "+apiV1+"/stockouts", deps.stockOutHandler.Create)

	// Settings
	mux.HandleFunc("GET "+apiV1+"/settings", deps.settingsHandler.Get)
	mux.HandleFunc("PUT "+apiV1+"/settings", deps.settingsHandler.Put)

	// Dashboard
	mux.HandleFunc("GET "+apiV1+"/dashboard", deps.dashboardHandler.GetDashboard)
	mux.HandleFunc("GET "+apiV1+"/dashboard/snapshot", deps.dashboardHandler.GetSnapshot)

	// Insights
	mux.HandleFunc("GET "+apiV1+"/insights", deps.insightsHandler.Get)
	mux.HandleFunc("POST "+apiV1+"/insights/refresh", deps.insightsHandler.Refresh)

	// Exports
	mux.HandleFunc("GET "+apiV1+"/export/excel", deps.exportHandler.ExportExcel)
	mux.HandleFunc("GET "+apiV1+"/export/json", deps.exportHandler.ExportJSON)
}
