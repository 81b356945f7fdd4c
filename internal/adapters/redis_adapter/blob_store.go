// internal/adapters/redis_adapter/blob_store.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dukahub/duka-be/internal/core/ports"
	"github.com/dukahub/duka-be/internal/pkg/jsonutil"
)

// Store persists the shop's named JSON records in Redis. Each record is
// one key holding the full serialized collection, replaced wholesale on
// save.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// Statically assert that *Store implements the BlobStore port.
var _ ports.BlobStore = (*Store)(nil)

// NewStore creates a Redis-backed blob store.
func NewStore(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.With(slog.String("store", "redis")),
	}
}

// Load reads and decodes the record under key into dest. Any failure
// (missing key, transport error, malformed or wrong-shape payload) is
// logged and reported as false with dest untouched; the caller's default
// stands.
func (s *Store) Load(ctx context.Context, key string, dest any) bool {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
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

// Save serializes value and replaces the record under key. The record is
// durable state, not a cache, so no TTL is set.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("marshal record %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to write record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("write record %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "record saved",
		slog.String("key", key),
		slog.Int("bytes", len(data)))
	return nil
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
