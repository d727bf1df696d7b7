package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates the database answers pings.
	Healthy Status = "ok"
	// Unhealthy indicates the database ping failed.
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

const defaultCheckTimeout = 2 * time.Second

// Service coordinates health checks.
type Service struct {
	db      Pinger
	timeout time.Duration
}

// New creates a Service that checks the database.
func New(db Pinger) *Service {
	return &Service{db: db, timeout: defaultCheckTimeout}
}

// WithTimeout bounds the database ping. Non-positive values keep the default.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check pings the database under the configured timeout.
func (s *Service) Check(ctx context.Context) Report {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.Ping(cctx); err != nil {
		return Report{Status: Unhealthy, Checks: map[string]CheckResult{"database": CheckError}}
	}
	return Report{Status: Healthy, Checks: map[string]CheckResult{"database": CheckOK}}
}
