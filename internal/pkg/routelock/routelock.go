// Package routelock serializes state transitions per route.
//
// Each route and its stops form one mutable aggregate. Two concurrent
// stop completions on the same route must not race to pick the same
// next stop or to double-complete the route, so every transition runs
// under a lock scoped to that route's identifier. Different routes
// lock independently and proceed concurrently.
package routelock

import (
	"sync"

	"dispatch/internal/core/domain/model/kernel"
)

// Registry hands out per-route locks on demand. Lock entries are
// reference counted and removed once the last holder releases, so the
// registry does not grow with the number of routes ever seen.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewRegistry creates an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Lock acquires the lock for the given route and returns the release
// function. The caller must invoke the release function exactly once,
// typically via defer.
func (r *Registry) Lock(routeID kernel.UUID) func() {
	key := routeID.String()

	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &entry{}
		r.entries[key] = e
	}
	e.refs++
	r.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			r.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(r.entries, key)
			}
			r.mu.Unlock()
		})
	}
}
