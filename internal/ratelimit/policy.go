package ratelimit

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataKey is the key used to attach a Policy to huma operation metadata.
const MetadataKey = "rateLimit"

// ErrInvalidPolicy is returned when a policy fails validation.
var ErrInvalidPolicy = errors.New("invalid rate limit policy")

// Default quota applied when an endpoint opts into rate limiting without
// overriding it.
const (
	DefaultLimit  int64 = 60
	DefaultWindow       = time.Minute
)

// Policy is a fixed-window quota: at most Limit requests per client within
// each Window. Policies are immutable values; attach one to an operation via
// MetadataKey to guard it.
type Policy struct {
	Limit       int64
	Window      time.Duration
	Description string
}

// DefaultPolicy returns the standard quota of 60 requests per minute.
func DefaultPolicy() Policy {
	return Policy{Limit: DefaultLimit, Window: DefaultWindow}
}

// Validate checks that the policy describes an enforceable quota.
func (p Policy) Validate() error {
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidPolicy, p.Limit)
	}

	if p.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidPolicy, p.Window)
	}

	return nil
}

// CounterKey builds the counter key for a client under this policy.
// Policies sharing the same limit and window share counter state per client.
// The identity is treated as opaque; the two numeric suffixes keep the key
// unambiguous even when the identity contains ':' (IPv6 addresses).
func (p Policy) CounterKey(identity string) string {
	return fmt.Sprintf("%s:%d:%d", identity, p.Limit, p.Window.Milliseconds())
}

// WindowSeconds returns the window length in whole seconds, as reported on
// the wire.
func (p Policy) WindowSeconds() int64 {
	return int64(p.Window / time.Second)
}

// Describe returns the policy description, synthesizing one from the quota
// when none was provided.
func (p Policy) Describe(name string) string {
	if p.Description != "" {
		return p.Description
	}

	window := "minute"
	if secs := p.WindowSeconds(); secs != 60 {
		window = fmt.Sprintf("%d seconds", secs)
	}

	return fmt.Sprintf("%s (limit: %d requests per %s)", name, p.Limit, window)
}

// PolicyFromOperation extracts the policy attached to an operation's
// metadata. The second return value reports whether one was found.
func PolicyFromOperation(op *huma.Operation) (Policy, bool) {
	if op == nil || op.Metadata == nil {
		return Policy{}, false
	}

	p, ok := op.Metadata[MetadataKey].(Policy)
	if !ok {
		return Policy{}, false
	}

	return p, true
}
