package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EndpointStatus describes one registered policy as seen by a single client.
type EndpointStatus struct {
	Endpoint      string
	Description   string
	Limit         int64
	WindowSeconds int64
	Count         int64
	Remaining     int64
	ResetSeconds  int64
}

// Reporter computes a client's usage across every registered policy. Reads
// are passive: producing a report never changes a later admission decision.
type Reporter struct {
	registry *Registry
	store    Store
	logger   *zap.Logger
}

// NewReporter creates a new status reporter.
func NewReporter(registry *Registry, store Store, logger *zap.Logger) *Reporter {
	return &Reporter{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// Report returns one entry per registered policy, whether or not the
// identity has ever been counted against it. Entry order is unspecified.
func (r *Reporter) Report(ctx context.Context, identity string) []EndpointStatus {
	regs := r.registry.Snapshot()
	statuses := make([]EndpointStatus, 0, len(regs))

	for _, reg := range regs {
		statuses = append(statuses, r.endpointStatus(ctx, identity, reg))
	}

	return statuses
}

func (r *Reporter) endpointStatus(ctx context.Context, identity string, reg Registration) EndpointStatus {
	p := reg.Policy
	status := EndpointStatus{
		Endpoint:      reg.Endpoint,
		Description:   p.Describe(reg.Endpoint),
		Limit:         p.Limit,
		WindowSeconds: p.WindowSeconds(),
		Remaining:     p.Limit,
	}

	if r.store == nil {
		return status
	}

	count, resetAt, err := r.store.Peek(ctx, p.CounterKey(identity))
	if err != nil {
		r.logger.Warn("failed to read rate limit counter",
			zap.String("endpoint", reg.Endpoint),
			zap.Error(err),
		)

		return status
	}

	status.Count = count
	status.Remaining = max(0, p.Limit-count)

	if !resetAt.IsZero() {
		if secs := int64(time.Until(resetAt).Seconds()); secs > 0 {
			status.ResetSeconds = secs
		}
	}

	return status
}
