package analytics

import (
	"sync"
	"time"
)

// dedup remembers keys for a sliding window so a view fires at most once
// per visitor and subject across re-renders.
type dedup struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	window time.Duration
}

func newDedup(window time.Duration) *dedup {
	d := &dedup{
		seen:   make(map[string]time.Time),
		window: window,
	}
	go d.cleanup()
	return d
}

// first reports whether key has not been seen within the window, and
// records it.
func (d *dedup) first(key string) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.seen[key]; ok && now.Sub(t) < d.window {
		return false
	}
	d.seen[key] = now
	return true
}

func (d *dedup) cleanup() {
	ticker := time.NewTicker(d.window)
	for range ticker.C {
		cutoff := time.Now().Add(-d.window)
		d.mu.Lock()
		for key, t := range d.seen {
			if t.Before(cutoff) {
				delete(d.seen, key)
			}
		}
		d.mu.Unlock()
	}
}
