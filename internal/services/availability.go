package services

import (
	"context"
	"sync"
	"time"
)

// Availability caches the result of a backend probe for a fixed TTL.
// Reset forces the next Available call to probe again.
type Availability struct {
	probe func(ctx context.Context) error
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	checked   bool
	available bool
	checkedAt time.Time
	lastErr   error
}

// NewAvailability wraps probe; a zero ttl re-probes on every call
func NewAvailability(probe func(ctx context.Context) error, ttl time.Duration) *Availability {
	return &Availability{
		probe: probe,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Available returns the cached result, probing when it is missing or stale
func (a *Availability) Available(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.checked && a.now().Sub(a.checkedAt) < a.ttl {
		return a.available, a.lastErr
	}

	a.lastErr = a.probe(ctx)
	a.available = a.lastErr == nil
	a.checked = true
	a.checkedAt = a.now()

	return a.available, a.lastErr
}

// Reset invalidates the cached result
func (a *Availability) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checked = false
	a.lastErr = nil
}
