package schedule

import (
	"sync"
	"time"
)

// FireTracker remembers, per target, the most recent due instant already
// serviced. It is in-memory only: a restart resets it, so the no-double-fire
// guarantee holds within a single process run.
type FireTracker struct {
	mu        sync.Mutex
	lastFired map[string]time.Time
}

func NewFireTracker() *FireTracker {
	return &FireTracker{lastFired: make(map[string]time.Time)}
}

// ShouldFire reports whether due has not yet been serviced for the target.
// It returns false exactly when a MarkFired with an instant >= due was
// recorded earlier.
func (t *FireTracker) ShouldFire(target string, due time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.lastFired[target]
	return !ok || last.Before(due)
}

// MarkFired records due as serviced, overwriting any earlier instant.
func (t *FireTracker) MarkFired(target string, due time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastFired[target] = due
}
