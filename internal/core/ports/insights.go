// internal/core/ports/insights.go
package ports

import (
	"context"

	"github.com/dukahub/duka-be/internal/core/domain"
)

// InsightsProvider is the opaque collaborator that turns computed metrics
// and raw (read-only) products and sales into freeform advice text. It is
// never handed write access to the ledger.
type InsightsProvider interface {
	Summarize(ctx context.Context, m Metrics, products []domain.Product, sales []domain.Sale) (string, error)
}
