// internal/workers/backup_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dukahub/duka-be/internal/adapters/storage"
	"github.com/dukahub/duka-be/internal/core/ports"
)

// BackupProcessor handles snapshot backup tasks.
type BackupProcessor struct {
	ledger  ports.Ledger
	storage storage.SnapshotStorage
	logger  *slog.Logger
}

// NewBackupProcessor creates a new backup processor.
func NewBackupProcessor(ledger ports.Ledger, st storage.SnapshotStorage, logger *slog.Logger) *BackupProcessor {
	return &BackupProcessor{
		ledger:  ledger,
		storage: st,
		logger:  logger.With(slog.String("processor", "backup")),
	}
}

// BackupSnapshot serializes the full ledger snapshot and uploads it to
// object storage under a timestamped key.
func (p *BackupProcessor) BackupSnapshot(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload BackupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	snapshot := p.ledger.Snapshot()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := storage.SnapshotKey(time.Now())
	if _, err := storage.UploadJSON(ctx, p.storage, key, data); err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}

	p.logger.InfoContext(ctx, "snapshot backed up",
		slog.String("key", key),
		slog.Int("bytes", len(data)),
		slog.Duration("took", time.Since(start)))
	return nil
}
