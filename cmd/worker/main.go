// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/dukahub/duka-be/internal/adapters/db"
	"github.com/dukahub/duka-be/internal/adapters/insights"
	redis_a "github.com/dukahub/duka-be/internal/adapters/redis_adapter"
	"github.com/dukahub/duka-be/internal/adapters/storage"
	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/core/services"
	"github.com/dukahub/duka-be/internal/pkg/config"
	"github.com/dukahub/duka-be/internal/pkg/logger"
	"github.com/dukahub/duka-be/internal/workers"
)

func main() {
	slogger := logger.Setup(logger.Config{Level: "info", Format: "json"})

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.Setup(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		ServiceName: cfg.App.Name + "-worker",
		Environment: cfg.App.Environment,
	})
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	blob, cleanup, err := buildBlobStore(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	ledger := services.NewLedger(ctx, blob, slogger)

	summarizer := insights.NewSummarizer(slogger)

	var snapshotStorage storage.SnapshotStorage
	if cfg.AWS.S3Bucket != "" {
		snapshotStorage, err = storage.NewS3Storage(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, slogger)
		if err != nil {
			slogger.Error("failed to initialize snapshot storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		StrictPriority:  cfg.Asynq.StrictPriority,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		Logger:          newAsynqLogger(slogger),
	})

	mux := asynq.NewServeMux()

	insightsProcessor := workers.NewInsightsProcessor(ledger, summarizer, blob, slogger)
	mux.HandleFunc(workers.TypeInsightsRefresh, insightsProcessor.RefreshInsights)

	if snapshotStorage != nil {
		backupProcessor := workers.NewBackupProcessor(ledger, snapshotStorage, slogger)
		mux.HandleFunc(workers.TypeSnapshotBackup, backupProcessor.BackupSnapshot)
	}

	scheduler := buildScheduler(cfg, redisOpt, snapshotStorage != nil, slogger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if scheduler != nil {
		go func() {
			if err := scheduler.Run(); err != nil {
				slogger.Error("failed to run scheduler", slog.String("error", err.Error()))
				shutdown <- syscall.SIGTERM
			}
		}()
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	if scheduler != nil {
		scheduler.Shutdown()
	}
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// buildScheduler registers the periodic insights and backup jobs.
func buildScheduler(cfg *config.Config, redisOpt asynq.RedisClientOpt, haveStorage bool, slogger *slog.Logger) *asynq.Scheduler {
	if cfg.Asynq.InsightsSchedule == "" && cfg.Asynq.BackupSchedule == "" {
		return nil
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: newAsynqLogger(slogger),
	})

	if cfg.Asynq.InsightsSchedule != "" {
		task, err := workers.NewInsightsRefreshTask("scheduler")
		if err == nil {
			if _, err := scheduler.Register(cfg.Asynq.InsightsSchedule, task); err != nil {
				slogger.Error("failed to register insights schedule", slog.String("error", err.Error()))
			}
		}
	}

	if cfg.Asynq.BackupSchedule != "" && haveStorage {
		task, err := workers.NewSnapshotBackupTask()
		if err == nil {
			if _, err := scheduler.Register(cfg.Asynq.BackupSchedule, task); err != nil {
				slogger.Error("failed to register backup schedule", slog.String("error", err.Error()))
			}
		}
	}

	return scheduler
}

func buildBlobStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.BlobStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		database, err := db.NewDatabase(ctx, &db.Config{
			Host:              cfg.Database.Host,
			Port:              cfg.Database.Port,
			User:              cfg.Database.User,
			Password:          cfg.Database.Password,
			Database:          cfg.Database.Name,
			SSLMode:           cfg.Database.SSLMode,
			MaxConnections:    10, // fewer connections for worker
			MinConnections:    2,
			MaxConnLifetime:   cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
			HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
			ConnectTimeout:    cfg.Database.ConnectTimeout,
		}, slogger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return db.NewBlobStore(database, slogger), database.Close, nil

	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return redis_a.NewStore(redisClient, slogger), func() { redisClient.Close() }, nil
	}
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

// asynqLogger adapts slog for Asynq.
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
