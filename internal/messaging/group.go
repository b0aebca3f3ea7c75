package messaging

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Worker is a component with a start/shutdown lifecycle, typically a
// Consumer.
type Worker interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup runs a set of workers over one shared subscriber with a
// unified lifecycle.
type ConsumerGroup struct {
	workers    []Worker
	subscriber message.Subscriber
	logger     *zap.Logger
}

// NewConsumerGroup creates a new consumer group.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers a worker with the group.
func (g *ConsumerGroup) Add(worker Worker) {
	g.workers = append(g.workers, worker)
}

// Start starts every worker. If one fails to start, the workers already
// running are shut down again and the error is returned.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, worker := range g.workers {
		if err := worker.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.workers[j].Shutdown()
			}

			return fmt.Errorf("start worker %d: %w", i, err)
		}
	}

	g.logger.Info("consumer group started", zap.Int("workers", len(g.workers)))

	return nil
}

// Shutdown stops every worker, then closes the shared subscriber. All
// workers are attempted; the first error wins.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("shutting down consumer group")

	var firstErr error

	for _, worker := range g.workers {
		if err := worker.Shutdown(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := g.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
