package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-stepped race clock for tests
// Readings never move backward, matching the monotonic contract of TimeProvider
type MockTimeProvider struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
}

// NewMockTimeProvider creates a clock reading start until advanced
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{start: start, now: start}
}

// Now returns the current reading
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d and returns the new reading; negative d is ignored
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.now = m.now.Add(d)
	}
	return m.now
}

// AdvanceFrames steps n frame intervals at once, as a stalled display would
func (m *MockTimeProvider) AdvanceFrames(n int, interval time.Duration) time.Time {
	return m.Advance(time.Duration(max(n, 0)) * interval)
}

// Elapsed is the total time the clock has been advanced
func (m *MockTimeProvider) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now.Sub(m.start)
}
