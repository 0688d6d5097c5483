package health

import "context"

// HistoryPinger checks search-history store connectivity.
type HistoryPinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker verifies an LLM provider is reachable.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
	Name() string
}
