package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		step    func(m *MockTimeProvider) time.Time
		elapsed time.Duration
	}{
		{"single frame", func(m *MockTimeProvider) time.Time { return m.Advance(16 * time.Millisecond) }, 16 * time.Millisecond},
		{"negative step ignored", func(m *MockTimeProvider) time.Time { return m.Advance(-time.Second) }, 0},
		{"stalled display", func(m *MockTimeProvider) time.Time { return m.AdvanceFrames(60, 16*time.Millisecond) }, 960 * time.Millisecond},
		{"no frames", func(m *MockTimeProvider) time.Time { return m.AdvanceFrames(-3, 16*time.Millisecond) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTimeProvider(start)
			got := tt.step(mock)
			if want := start.Add(tt.elapsed); !got.Equal(want) || !mock.Now().Equal(want) {
				t.Errorf("reading = %v (Now %v), want %v", got, mock.Now(), want)
			}
			if mock.Elapsed() != tt.elapsed {
				t.Errorf("Elapsed() = %v, want %v", mock.Elapsed(), tt.elapsed)
			}
		})
	}
}

func TestPausableClock(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewPausableClock(mock)

	if !clock.IsPaused() {
		t.Fatal("new clock should be paused")
	}
	mock.Advance(time.Second)
	if e := clock.Elapsed(); e != 0 {
		t.Errorf("paused clock advanced to %v", e)
	}

	clock.Resume()
	mock.Advance(2 * time.Second)
	clock.Resume() // no-op while running
	if e := clock.Elapsed(); e != 2*time.Second {
		t.Errorf("Expected 2s elapsed, got %v", e)
	}

	clock.Pause()
	mock.Advance(10 * time.Second)
	clock.Pause() // no-op while paused
	if e := clock.Elapsed(); e != 2*time.Second {
		t.Errorf("Expected pause to freeze elapsed at 2s, got %v", e)
	}

	// Accumulates across stop and start
	clock.Resume()
	mock.Advance(500 * time.Millisecond)
	if e := clock.Elapsed(); e != 2500*time.Millisecond {
		t.Errorf("Expected 2.5s elapsed, got %v", e)
	}

	clock.Reset()
	if e := clock.Elapsed(); e != 0 || !clock.IsPaused() {
		t.Errorf("Reset left elapsed=%v paused=%v", e, clock.IsPaused())
	}
}
