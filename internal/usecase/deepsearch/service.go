package deepsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/domain/prompt"
)

// Service aggregates per-layer searches into one deep-search result.
type Service struct {
	exec    Executor
	history HistoryWriter
	logger  *zap.Logger
}

// New creates a deep-search service. history can be nil (no logging of searches).
func New(exec Executor, history HistoryWriter, logger *zap.Logger) *Service {
	return &Service{exec: exec, history: history, logger: logger}
}

// DeepSearch runs the query against every layer, then synthesizes the
// combined findings. Layer failures are isolated: a layer whose chain is
// exhausted carries an error status while its siblings proceed.
func (s *Service) DeepSearch(ctx context.Context, query string) domain.SearchResult {
	results := make(map[domain.Layer]domain.LayerResult, len(domain.Layers()))

	for _, layer := range domain.Layers() {
		res := s.exec.Execute(ctx, prompt.ForLayer(layer, query))
		results[layer] = res
		s.logger.Debug("layer search completed",
			zap.String("layer", layer.String()),
			zap.String("status", string(res.Status)),
		)
	}

	sr := domain.SearchResult{
		Query:     query,
		Results:   results,
		Synthesis: s.synthesize(ctx, query, results),
		Timestamp: time.Now().UTC(),
	}

	s.record(ctx, query, "", aggregateStatus(results))
	return sr
}

// SearchLayer runs the query against a single layer.
func (s *Service) SearchLayer(ctx context.Context, layer domain.Layer, query string) domain.LayerResult {
	res := s.exec.Execute(ctx, prompt.ForLayer(layer, query))
	s.record(ctx, query, layer.String(), res.Status)
	return res
}

// synthesize asks the chain for a cross-layer analysis of the serialized
// results. A failed synthesis is recorded as an error string, never
// aborting the aggregate.
func (s *Service) synthesize(
	ctx context.Context, query string, results map[domain.Layer]domain.LayerResult,
) string {
	serialized, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		// map[Layer]LayerResult always marshals; guard anyway.
		return fmt.Sprintf("error: serialize layer results: %v", err)
	}

	text, err := s.exec.Generate(ctx, prompt.Synthesis(query, string(serialized)))
	if err != nil {
		s.logger.Warn("synthesis failed", zap.Error(err))
		return fmt.Sprintf("error: %v", err)
	}
	return text
}

func (s *Service) record(ctx context.Context, query, layer string, status domain.Status) {
	if s.history == nil {
		return
	}

	entry := domain.HistoryEntry{
		ID:        uuid.NewString(),
		Query:     query,
		Layer:     layer,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.Warn("history append failed", zap.Error(err))
	}
}

// aggregateStatus folds per-layer statuses into one history status:
// success when no layer errored, partial when some did, error when all did.
func aggregateStatus(results map[domain.Layer]domain.LayerResult) domain.Status {
	errored := 0
	for _, res := range results {
		if res.Status == domain.StatusError {
			errored++
		}
	}
	switch errored {
	case 0:
		return domain.StatusSuccess
	case len(results):
		return domain.StatusError
	default:
		return domain.StatusPartial
	}
}
