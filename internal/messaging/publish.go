package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends a typed event to its topic. A nil Publish is a valid way to
// say "nobody is listening"; callers are expected to check before publishing.
type Publish[T any] func(event *T) error

// NewPublishFunc creates a typed publish function bound to one topic. Events
// are serialized as JSON.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event for %s: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)

		if err := publisher.Publish(topic, msg); err != nil {
			return fmt.Errorf("publish to %s: %w", topic, err)
		}

		return nil
	}
}

// PublisherGroup owns the underlying publisher so its lifecycle can be
// managed in one place while any number of typed publish functions share it.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup creates a new publisher group.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher returns the shared message publisher for creating typed publish
// functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
