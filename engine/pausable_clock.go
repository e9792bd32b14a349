package engine

import (
	"sync"
	"time"
)

// PausableClock measures race time: it runs only between Resume and Pause and accumulates across stops
type PausableClock struct {
	mu sync.RWMutex

	provider TimeProvider

	running     bool
	resumedAt   time.Time     // Provider time of the last Resume
	accumulated time.Duration // Run time before the last Resume
}

// NewPausableClock creates a paused clock at zero over the given provider
func NewPausableClock(provider TimeProvider) *PausableClock {
	return &PausableClock{provider: provider}
}

// Resume continues time advancement; no-op while running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.running {
		return
	}
	pc.running = true
	pc.resumedAt = pc.provider.Now()
}

// Pause stops time advancement; no-op while paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.running {
		return
	}
	pc.accumulated += pc.provider.Now().Sub(pc.resumedAt)
	pc.running = false
}

// Reset pauses the clock and zeroes elapsed time
func (pc *PausableClock) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.running = false
	pc.accumulated = 0
	pc.resumedAt = time.Time{}
}

// Elapsed returns total running time
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	if !pc.running {
		return pc.accumulated
	}
	return pc.accumulated + pc.provider.Now().Sub(pc.resumedAt)
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return !pc.running
}
