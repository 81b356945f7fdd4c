// internal/workers/insights_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dukahub/duka-be/internal/core/ports"
)

// KeyInsights is where the cached insights document lives in the blob store.
const KeyInsights = "shop:insights"

// InsightsDocument is the cached output of an insights refresh.
type InsightsDocument struct {
	Summary     string        `json:"summary"`
	Metrics     ports.Metrics `json:"metrics"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// InsightsProcessor handles insights refresh tasks.
type InsightsProcessor struct {
	ledger   ports.Ledger
	provider ports.InsightsProvider
	blob     ports.BlobStore
	logger   *slog.Logger
}

// NewInsightsProcessor creates a new insights processor.
func NewInsightsProcessor(ledger ports.Ledger, provider ports.InsightsProvider, blob ports.BlobStore, logger *slog.Logger) *InsightsProcessor {
	return &InsightsProcessor{
		ledger:   ledger,
		provider: provider,
		blob:     blob,
		logger:   logger.With(slog.String("processor", "insights")),
	}
}

// RefreshInsights recomputes advice text from the current ledger state
// and caches it in the blob store for the read API to serve.
func (p *InsightsProcessor) RefreshInsights(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload InsightsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	metrics := p.ledger.Metrics()
	summary, err := p.provider.Summarize(ctx, metrics, p.ledger.Products(), p.ledger.Sales())
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}

	doc := InsightsDocument{
		Summary:     summary,
		Metrics:     metrics,
		GeneratedAt: time.Now().UTC(),
	}
	if err := p.blob.Save(ctx, KeyInsights, doc); err != nil {
		return fmt.Errorf("failed to cache insights: %w", err)
	}

	p.logger.InfoContext(ctx, "insights refreshed",
		slog.String("requested_by", payload.RequestedBy),
		slog.Duration("took", time.Since(start)))
	return nil
}
