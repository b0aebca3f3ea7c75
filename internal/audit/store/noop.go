package store

import (
	"context"

	"github.com/quotagate/quotagate/internal/audit"
	"go.uber.org/zap"
)

// Noop is an audit.Store that only logs events. It backs the consumer when
// no database is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new log-only audit store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveRequestDenied(_ context.Context, event *audit.RequestDeniedEvent) error {
	n.logger.Info("request denied event received",
		zap.String("endpoint", event.Endpoint),
		zap.String("clientIp", event.ClientIP),
		zap.Int64("count", event.Count),
		zap.Int64("limit", event.Limit),
		zap.String("instance", event.Instance),
		zap.Time("deniedAt", event.DeniedAt),
	)

	return nil
}
