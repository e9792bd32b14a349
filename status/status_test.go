package status

import (
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{59999, "00:59"},
		{60000, "01:00"},
		{754321, "12:34"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.ms))
		})
	}
}

func TestSnapshotReadsPublishedMetrics(t *testing.T) {
	reg := NewRegistry()
	reg.Labels.Get(KeyRacePhase).Store("Finished")
	reg.Ints.Get(KeyRaceElapsedMs).Store(61500)
	reg.Percents.Get(KeyRaceProgress).Set(100)
	reg.Ints.Get(KeyRaceWinner).Store(3)
	reg.Labels.Get(KeyCapturePhase).Store("Stopped")
	reg.Labels.Get(KeyCaptureArtifact).Store("artifact:1234")
	reg.Ints.Get(KeyCaptureSegments).Store(2)
	reg.Ints.Get(KeyCaptureBytes).Store(10)

	want := Snapshot{
		RacePhase:      "Finished",
		ElapsedMs:      61500,
		Elapsed:        "01:01",
		ProgressPct:    100,
		WinnerID:       3,
		RecordingPhase: "Stopped",
		Artifact:       "artifact:1234",
		Segments:       2,
		Bytes:          10,
	}
	got := reg.Snapshot()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, got.HasWinner())
	assert.True(t, got.ArtifactAvailable())
	assert.Equal(t, "Winner: Car 3", got.Headline())
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "Ready", Snapshot{RacePhase: "Idle"}.Headline())
	assert.Equal(t, "Racing...", Snapshot{RacePhase: "Running"}.Headline())
	assert.Equal(t, "Ready", Snapshot{RacePhase: "Finished"}.Headline())
}

func TestFreshRegistryReadsIdle(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 11, reg.TotalCount())

	snap := reg.Snapshot()
	assert.False(t, snap.HasWinner())
	assert.False(t, snap.ArtifactAvailable())
	assert.Equal(t, "00:00", snap.Elapsed)
}

func TestMetricMapCachesPointers(t *testing.T) {
	m := NewMetricMap[atomic.Int64](KeyRaceFrames)
	p := m.Get(KeyRaceFrames)
	assert.Same(t, p, m.Get(KeyRaceFrames))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get(KeyRaceFrames).Add(1)
			m.Get(KeyCaptureSegments).Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8), p.Load())
	assert.Equal(t, int64(8), m.Get(KeyCaptureSegments).Load())

	var keys []Key
	m.Range(func(k Key, _ *atomic.Int64) { keys = append(keys, k) })
	assert.Equal(t, []Key{KeyCaptureSegments, KeyRaceFrames}, keys)
	assert.Equal(t, 2, m.Count())
}

func TestKeySubsystem(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyRaceStaleFrames, "race"},
		{KeyCaptureArtifact, "capture"},
		{"bare", "bare"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Subsystem())
		})
	}
}

func TestCountersBySubsystem(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get(KeyRaceFrames).Store(120)
	reg.Ints.Get(KeyRaceStaleFrames).Store(2)
	reg.Ints.Get(KeyCaptureBytes).Store(4096)

	want := []Counter{
		{KeyCaptureBytes, 4096},
		{KeyCaptureSegments, 0},
	}
	if diff := cmp.Diff(want, reg.Counters("capture")); diff != "" {
		t.Errorf("Counters(capture) mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, reg.Counters("race"), 5)
	assert.Empty(t, reg.Counters("audio"))
}

func TestPercentClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 42.5, 42.5},
		{"below", -3, 0},
		{"above", 130, 100},
		{"nan", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Percent
			p.Set(tt.in)
			assert.Equal(t, tt.want, p.Get())
		})
	}
}

func TestLabelClipsOnRuneBoundary(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantLen int
	}{
		{"short", "Recording", 9},
		{"ascii overflow", strings.Repeat("x", MaxLabelLen+10), MaxLabelLen},
		{"multibyte overflow", strings.Repeat("x", MaxLabelLen-1) + "é", MaxLabelLen - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Label
			assert.Equal(t, "", l.Swap(tt.in))
			got := l.Load()
			assert.Len(t, got, tt.wantLen)
			assert.True(t, utf8.ValidString(got))
			assert.Equal(t, got, l.Swap("Idle"))
		})
	}
}
