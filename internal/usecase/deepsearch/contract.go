package deepsearch

import (
	"context"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
)

// Executor runs prompts through the provider fallback chain.
type Executor interface {
	// Execute shapes the reply into a LayerResult and never fails.
	Execute(ctx context.Context, prompt string) domain.LayerResult
	// Generate returns the raw reply text, or an error when the whole
	// chain fails.
	Generate(ctx context.Context, prompt string) (string, error)
}

// HistoryWriter appends to the search-history log.
type HistoryWriter interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
}
