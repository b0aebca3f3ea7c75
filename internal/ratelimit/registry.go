package ratelimit

import "sync"

// Registration pairs an endpoint with the policy registered for it.
type Registration struct {
	Endpoint string
	Policy   Policy
}

// Registry tracks which endpoints have declared rate limit policies.
// Endpoints register lazily, on their first guarded request; entries are
// never removed for the lifetime of the process.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewRegistry creates an empty policy registry.
func NewRegistry() *Registry {
	return &Registry{
		policies: make(map[string]Policy),
	}
}

// Register records the policy for an endpoint. Registering the same endpoint
// again overwrites the previous entry. Invalid policies are rejected and
// leave the registry unchanged.
func (r *Registry) Register(endpoint string, p Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.policies[endpoint] = p

	return nil
}

// Lookup returns the registered policy for an endpoint, if any.
func (r *Registry) Lookup(endpoint string) (Policy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.policies[endpoint]

	return p, ok
}

// Snapshot returns a copy of every registration. Order is unspecified;
// callers must not depend on it.
func (r *Registry) Snapshot() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]Registration, 0, len(r.policies))

	for endpoint, p := range r.policies {
		regs = append(regs, Registration{Endpoint: endpoint, Policy: p})
	}

	return regs
}
