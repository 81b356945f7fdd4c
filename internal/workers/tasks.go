// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeInsightsRefresh = "insights:refresh"
	TypeSnapshotBackup  = "snapshot:backup"
)

// InsightsPayload carries parameters for an insights refresh job.
type InsightsPayload struct {
	RequestedBy string    `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// BackupPayload carries parameters for a snapshot backup job.
type BackupPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

// NewInsightsRefreshTask builds a queued insights refresh task.
func NewInsightsRefreshTask(requestedBy string) (*asynq.Task, error) {
	payload, err := json.Marshal(InsightsPayload{
		RequestedBy: requestedBy,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal insights payload: %w", err)
	}
	return asynq.NewTask(TypeInsightsRefresh, payload), nil
}

// NewSnapshotBackupTask builds a queued snapshot backup task.
func NewSnapshotBackupTask() (*asynq.Task, error) {
	payload, err := json.Marshal(BackupPayload{RequestedAt: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup payload: %w", err)
	}
	return asynq.NewTask(TypeSnapshotBackup, payload), nil
}
