package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
)

// Provider configuration states reported by analytics.
const (
	ProviderConfigured    = "configured"
	ProviderNotConfigured = "not_configured"
)

// recentLimit caps the recent-query window in the report.
const recentLimit = 10

// Report aggregates rudimentary search analytics.
type Report struct {
	SearchCount   int64                `json:"search_count"`
	LastSearch    *domain.HistoryEntry `json:"last_search,omitempty"`
	RecentQueries []string             `json:"recent_queries"`
	Providers     map[string]string    `json:"providers"`
}

// Service builds analytics reports over the search history.
type Service struct {
	history   HistoryReader
	providers map[string]bool // provider name -> has credential
	logger    *zap.Logger
}

// New creates an analytics service. providers maps each configured
// provider name to whether a credential is present.
func New(history HistoryReader, providers map[string]bool, logger *zap.Logger) *Service {
	return &Service{history: history, providers: providers, logger: logger}
}

// GetReport assembles the analytics report. A history store failure
// degrades to zero counts rather than failing the request.
func (s *Service) GetReport(ctx context.Context) Report {
	report := Report{
		RecentQueries: []string{},
		Providers:     make(map[string]string, len(s.providers)),
	}

	for name, hasKey := range s.providers {
		if hasKey {
			report.Providers[name] = ProviderConfigured
		} else {
			report.Providers[name] = ProviderNotConfigured
		}
	}

	count, err := s.history.Count(ctx)
	if err != nil {
		s.logger.Warn("history count failed", zap.Error(err))
		return report
	}
	report.SearchCount = count

	recent, err := s.history.Recent(ctx, recentLimit)
	if err != nil {
		s.logger.Warn("history read failed", zap.Error(err))
		return report
	}
	if len(recent) > 0 {
		last := recent[0]
		report.LastSearch = &last
		for _, e := range recent {
			report.RecentQueries = append(report.RecentQueries, e.Query)
		}
	}

	return report
}
