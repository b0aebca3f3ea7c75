package ratelimit

import (
	"context"
	"time"
)

// Store defines the interface for fixed-window counter storage.
type Store interface {
	// Record counts one request against the key and returns the updated
	// count together with the deadline of the current window. A key whose
	// window has lapsed starts over at count 1 with a fresh deadline; within
	// a window the deadline never moves and the count grows without bound,
	// past any limit.
	Record(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)

	// Peek returns the current count and window deadline for a key without
	// recording anything. Absent keys report a zero count and zero time. A
	// lapsed record stays visible until the next Record on its key.
	Peek(ctx context.Context, key string) (count int64, resetAt time.Time, err error)
}
