package findaid

import (
	"context"

	healthuc "github.com/kailas-cloud/findaid/internal/usecase/health"
)

// CheckSearchEngine is the Checks key of the search engine ping.
const CheckSearchEngine = healthuc.CheckSearchEngine

// HealthStatus is the aggregated state of the parser and the search engine.
// The parser has no external dependency, so a client built without WithSolr
// reports "ok" with no checks.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

// Healthy reports whether every configured component passed.
func (h HealthStatus) Healthy() bool {
	return h.Status == string(healthuc.Healthy)
}

// SearchConfigured reports whether the search engine was checked at all.
func (h HealthStatus) SearchConfigured() bool {
	_, ok := h.Checks[CheckSearchEngine]
	return ok
}

// SearchEngineUp reports whether the search engine answered its ping.
// Parsing keeps working when it is down.
func (h HealthStatus) SearchEngineUp() bool {
	return h.Checks[CheckSearchEngine] == string(healthuc.CheckOK)
}

// Health pings the search engine, when configured, and aggregates the result.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
