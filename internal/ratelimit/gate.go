package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed   bool
	Limit     int64
	Count     int64
	Remaining int64
	ResetAt   time.Time
}

// Gate admits or rejects requests against fixed-window quotas. It keeps the
// registry in sync with the policies it sees, so the status report reflects
// every endpoint that has received traffic.
type Gate struct {
	registry *Registry
	store    Store
	logger   *zap.Logger
}

// NewGate creates a new admission gate.
func NewGate(registry *Registry, store Store, logger *zap.Logger) *Gate {
	return &Gate{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// Check counts one request from identity against the endpoint's policy and
// decides whether to admit it. The policy is re-registered on every call;
// registering again with a different quota or description overwrites the
// previous entry.
//
// The gate fails open: a missing or failing store admits the request rather
// than rejecting traffic on a bookkeeping error.
func (g *Gate) Check(ctx context.Context, identity, endpoint string, p Policy) Decision {
	if err := g.registry.Register(endpoint, p); err != nil {
		g.logger.Warn("policy rejected by registry",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
	}

	if g.store == nil {
		g.logger.Error("rate limit store not configured, admitting request",
			zap.String("endpoint", endpoint),
		)

		return Decision{Allowed: true, Limit: p.Limit, Remaining: p.Limit}
	}

	count, resetAt, err := g.store.Record(ctx, p.CounterKey(identity), p.Window)
	if err != nil {
		g.logger.Error("rate limit store failed, admitting request",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)

		return Decision{Allowed: true, Limit: p.Limit, Remaining: p.Limit}
	}

	return Decision{
		Allowed:   count <= p.Limit,
		Limit:     p.Limit,
		Count:     count,
		Remaining: max(0, p.Limit-count),
		ResetAt:   resetAt,
	}
}
