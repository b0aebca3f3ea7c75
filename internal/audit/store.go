package audit

import "context"

// Store defines the interface for persisting denial events.
type Store interface {
	SaveRequestDenied(ctx context.Context, event *RequestDeniedEvent) error
}
