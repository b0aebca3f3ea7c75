package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/quotagate/quotagate/internal/messaging"
)

// NewDeniedPublishFunc wraps a publish function so every denial event leaves
// with an ID, the publishing instance's tag, and a denial timestamp. Fields
// already set by the caller are kept.
func NewDeniedPublishFunc(
	publish messaging.Publish[RequestDeniedEvent],
	instance string,
) messaging.Publish[RequestDeniedEvent] {
	return func(event *RequestDeniedEvent) error {
		if event.ID == "" {
			event.ID = uuid.NewString()
		}

		if event.Instance == "" {
			event.Instance = instance
		}

		if event.DeniedAt.IsZero() {
			event.DeniedAt = time.Now().UTC()
		}

		return publish(event)
	}
}
