package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	history   HistoryPinger
	providers []ProviderChecker
}

// New creates a Service. history can be nil (memory driver needs no ping).
func New(history HistoryPinger, providers ...ProviderChecker) *Service {
	return &Service{history: history, providers: providers}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.history != nil {
		if err := s.history.Ping(ctx); err != nil {
			checks["history"] = CheckError
		} else {
			checks["history"] = CheckOK
		}
	}

	for _, p := range s.providers {
		if err := p.HealthCheck(ctx); err != nil {
			checks[p.Name()] = CheckError
		} else {
			checks[p.Name()] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
