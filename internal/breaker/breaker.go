// Package breaker implements the timed two-state (closed/open) circuit
// breaker guarding distributed cache calls.
//
// The breaker deliberately has no half-open probing state: once the break
// duration elapses, the very next health check re-admits traffic, accepting
// one probing call against a possibly still-unhealthy backend in exchange
// for a simpler, predictable protocol.
package breaker

import (
	"sync"
	"time"
)

// Breaker tracks backend health as pure state, no I/O. Both operations are
// cheap and safe under concurrent callers: the {open, openedAt} pair is
// guarded by one mutex and the changed edge is computed inside the critical
// section, so at most one caller observes changed=true per transition.
//
// A break duration <= 0 disables the breaker: it never opens and the
// backend is always reported usable.
type Breaker struct {
	mu       sync.Mutex
	open     bool
	openedAt time.Time

	breakDuration time.Duration
	now           func() time.Time
}

// New returns a closed breaker with the given cooldown.
func New(breakDuration time.Duration) *Breaker {
	return &Breaker{
		breakDuration: breakDuration,
		now:           time.Now,
	}
}

// TryOpen records a genuine backend failure. It opens the breaker and
// stamps the opening time only on the closed->open edge; changed is true
// exactly on that edge. Returns the resulting open state.
func (b *Breaker) TryOpen() (open, changed bool) {
	if b.breakDuration <= 0 {
		return false, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return true, false
	}
	b.open = true
	b.openedAt = b.now()
	return true, true
}

// IsClosed reports whether the backend is currently usable. When the
// cooldown has elapsed since opening, the breaker flips back to closed and
// reports changed=true to exactly one caller.
func (b *Breaker) IsClosed() (closed, changed bool) {
	if b.breakDuration <= 0 {
		return true, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true, false
	}
	if b.now().Sub(b.openedAt) < b.breakDuration {
		return false, false
	}
	b.open = false
	b.openedAt = time.Time{}
	return true, true
}

// BreakDuration returns the configured cooldown.
func (b *Breaker) BreakDuration() time.Duration { return b.breakDuration }
