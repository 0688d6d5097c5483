package suggest

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain/prompt"
)

// Service generates related search queries for a partial query.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

// New creates a suggestion service.
func New(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Suggest returns up to five follow-up queries. An empty query yields no
// suggestions and no provider call; generation or parse failures degrade
// to a static pattern list.
func (s *Service) Suggest(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}
	}

	text, err := s.gen.Generate(ctx, prompt.Suggestions(query))
	if err != nil {
		s.logger.Warn("suggestion generation failed", zap.Error(err))
		return fallbackSuggestions(query)
	}

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil || len(parsed.Suggestions) == 0 {
		return fallbackSuggestions(query)
	}
	return parsed.Suggestions
}

func fallbackSuggestions(query string) []string {
	return []string{
		query + " booking",
		query + " status",
		query + " history",
		query + " contact",
		query + " procedures",
	}
}
