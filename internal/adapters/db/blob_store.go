// internal/adapters/db/blob_store.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/pkg/jsonutil"
)

// BlobStore persists the shop's named JSON records in a single
// shop_records table (key text primary key, value jsonb). Each save
// replaces the row wholesale, mirroring the Redis adapter's semantics.
type BlobStore struct {
	db      *Database
	logger  *slog.Logger
	builder squirrel.StatementBuilderType
}

// Statically assert that *BlobStore implements the BlobStore port.
var _ ports.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates a Postgres-backed blob store.
func NewBlobStore(db *Database, logger *slog.Logger) *BlobStore {
	return &BlobStore{
		db:      db,
		logger:  logger.With(slog.String("store", "postgres")),
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Load reads and decodes the record under key into dest. Any failure is
// logged and reported as false with dest untouched.
func (s *BlobStore) Load(ctx context.Context, key string, dest any) bool {
	query, args, err := s.builder.
		Select("value").
		From("shop_records").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		s.logger.WarnContext(ctx, "failed to build load query",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}

	var data []byte
	err = s.db.QueryRow(ctx, query, args...).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		s.logger.DebugContext(ctx, "record missing, using default",
			slog.String("key", key))
		return false
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read record, using default",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}
	if !jsonutil.DecodeInto(data, dest) {
		s.logger.WarnContext(ctx, "malformed record, using default",
			slog.String("key", key),
			slog.Int("bytes", len(data)))
		return false
	}
	return true
}

// Save serializes value and upserts the record under key.
func (s *BlobStore) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("marshal record %s: %w", key, err)
	}

	query, args, err := s.builder.
		Insert("shop_records").
		Columns("key", "value", "updated_at").
		Values(key, data, time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert for record %s: %w", key, err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "failed to write record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("write record %s: %w", key, err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *BlobStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
