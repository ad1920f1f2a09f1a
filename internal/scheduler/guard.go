package scheduler

import "sync"

// RunGuard suppresses overlapping runs per scheduling key. Acquisition is
// a non-blocking check-and-set: a trigger that fires while the previous
// run for the same key is still in flight acquires nothing and must skip.
type RunGuard struct {
	mu      sync.Mutex
	running map[string]bool
}

func NewRunGuard() *RunGuard {
	return &RunGuard{running: make(map[string]bool)}
}

// TryAcquire marks key as running. It returns false when a run for key is
// already in flight; on true the caller must Release.
func (g *RunGuard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running[key] {
		return false
	}
	g.running[key] = true
	return true
}

// Release clears the in-flight flag for key.
func (g *RunGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, key)
}

// Running reports whether a run for key is in flight.
func (g *RunGuard) Running(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running[key]
}
