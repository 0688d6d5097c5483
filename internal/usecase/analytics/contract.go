package analytics

import (
	"context"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
)

// HistoryReader reads the search-history log.
type HistoryReader interface {
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int) ([]domain.HistoryEntry, error)
}
