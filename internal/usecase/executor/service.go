package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/metrics"
)

// Service runs prompts through an ordered chain of text generators.
// Each provider is tried once; the first reply wins. No retries, no
// backoff, no caching of identical prompts.
type Service struct {
	chain  []Generator
	logger *zap.Logger
}

// New creates an executor over the given fallback chain.
func New(chain []Generator, logger *zap.Logger) *Service {
	return &Service{chain: chain, logger: logger}
}

// Execute runs the prompt through the chain and shapes the reply into a
// LayerResult. Never returns an error: provider and parse failures are
// folded into the result's status.
func (s *Service) Execute(ctx context.Context, prompt string) domain.LayerResult {
	var failures []string

	for _, gen := range s.chain {
		text, err := gen.Generate(ctx, prompt)
		if err != nil {
			s.logger.Warn("provider failed, falling through",
				zap.String("provider", gen.Name()),
				zap.Error(err),
			)
			metrics.ProviderFallbacksTotal.WithLabelValues(gen.Name()).Inc()
			failures = append(failures, fmt.Sprintf("%s: %v", gen.Name(), err))
			continue
		}

		if res, ok := parseReply(text); ok {
			return res
		}
		return domain.NormalizeText(text)
	}

	return domain.LayerResult{
		Status: domain.StatusError,
		Error:  terminalError(failures),
	}
}

// Generate runs the prompt through the chain and returns the raw reply
// text. Used for synthesis and suggestion calls, which are not shaped
// into LayerResults.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	var failures []string

	for _, gen := range s.chain {
		text, err := gen.Generate(ctx, prompt)
		if err != nil {
			s.logger.Warn("provider failed, falling through",
				zap.String("provider", gen.Name()),
				zap.Error(err),
			)
			metrics.ProviderFallbacksTotal.WithLabelValues(gen.Name()).Inc()
			failures = append(failures, fmt.Sprintf("%s: %v", gen.Name(), err))
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: %s", domain.ErrAllProvidersFailed, terminalError(failures))
}

func terminalError(failures []string) string {
	if len(failures) == 0 {
		return "no providers configured"
	}
	return strings.Join(failures, "; ")
}

// parseReply attempts strict structured parsing of a provider reply.
// A reply counts as structured only when it unmarshals into a LayerResult
// carrying a status: valid JSON of the wrong shape falls through to the
// normalizer like any freeform text.
func parseReply(text string) (domain.LayerResult, bool) {
	var res domain.LayerResult
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return domain.LayerResult{}, false
	}
	if res.Status == "" {
		return domain.LayerResult{}, false
	}
	return res, true
}
