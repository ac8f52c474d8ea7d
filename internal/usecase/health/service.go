package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
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

// CheckSearchEngine is the report key for the search engine ping.
const CheckSearchEngine = "search_engine"

// Service coordinates health checks.
type Service struct {
	engine EnginePinger
}

// New creates a Service. engine can be nil when search is not configured.
func New(engine EnginePinger) *Service {
	return &Service{engine: engine}
}

// Check runs health checks against all components. The parser and compiler
// have no external dependencies, so only the search engine can fail.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.engine != nil {
		if err := s.engine.Ping(ctx); err != nil {
			checks[CheckSearchEngine] = CheckError
		} else {
			checks[CheckSearchEngine] = CheckOK
		}
	}

	status := Healthy
	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}
	switch {
	case failed == 0:
	case failed == len(checks):
		status = Unhealthy
	default:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
