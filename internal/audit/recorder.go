package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Recorder persists denial events consumed from the stream.
type Recorder struct {
	store  Store
	logger *zap.Logger
}

// NewRecorder creates a new denial event recorder.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger,
	}
}

// HandleRequestDenied stores one denial event. It satisfies
// messaging.Handler.
func (r *Recorder) HandleRequestDenied(ctx context.Context, event *RequestDeniedEvent) error {
	if err := r.store.SaveRequestDenied(ctx, event); err != nil {
		return fmt.Errorf("save denial event %s: %w", event.ID, err)
	}

	r.logger.Debug("recorded denial",
		zap.String("endpoint", event.Endpoint),
		zap.String("clientIp", event.ClientIP),
		zap.Int64("count", event.Count),
	)

	return nil
}
