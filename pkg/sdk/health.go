package restodex

import (
	"context"
	"time"
)

// HealthStatus describes the overall health and per-component results.
type HealthStatus struct {
	Status string            // "ok" or "error"
	Checks map[string]string // component name to "ok" or "error"
}

// Healthy reports whether every component passed.
func (h HealthStatus) Healthy() bool { return h.Status == "ok" }

// Health returns the status of the backing database.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.health.Check(ctx)

	hs := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		hs.Checks[name] = string(res)
	}
	c.obs.observe("health", start, nil)
	return hs
}
