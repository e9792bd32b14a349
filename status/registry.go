package status

import (
	"strings"
	"sync/atomic"
)

// Key names one published value as "<subsystem>.<name>"
type Key string

// Metric keys published by the race scheduler and capture controller
const (
	KeyRacePhase         Key = "race.phase"
	KeyRaceElapsedMs     Key = "race.elapsed_ms"
	KeyRaceProgress      Key = "race.progress"
	KeyRaceWinner        Key = "race.winner" // 0 = unresolved
	KeyRaceFrames        Key = "race.frames"
	KeyRaceStaleFrames   Key = "race.stale_frames"
	KeyRaceSkippedFrames Key = "race.skipped_frames"

	KeyCapturePhase    Key = "capture.phase"
	KeyCaptureArtifact Key = "capture.artifact"
	KeyCaptureSegments Key = "capture.segments"
	KeyCaptureBytes    Key = "capture.bytes"
)

// Subsystem returns the part of the key before the first dot
func (k Key) Subsystem() string {
	sub, _, _ := strings.Cut(string(k), ".")
	return sub
}

// Registry is the central metrics facade
// Every known key is registered up front so a fresh registry already reads as an idle race
type Registry struct {
	Ints     *MetricMap[atomic.Int64]
	Percents *MetricMap[Percent]
	Labels   *MetricMap[Label]
}

// NewRegistry creates a Registry holding every race and capture key
func NewRegistry() *Registry {
	return &Registry{
		Ints: NewMetricMap[atomic.Int64](
			KeyRaceElapsedMs, KeyRaceWinner, KeyRaceFrames, KeyRaceStaleFrames, KeyRaceSkippedFrames,
			KeyCaptureSegments, KeyCaptureBytes,
		),
		Percents: NewMetricMap[Percent](KeyRaceProgress),
		Labels:   NewMetricMap[Label](KeyRacePhase, KeyCapturePhase, KeyCaptureArtifact),
	}
}

// TotalCount returns the number of registered keys across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Percents.Count() + r.Labels.Count()
}

// Counter is one integer value read from the registry
type Counter struct {
	Key   Key
	Value int64
}

// Counters returns every integer value under subsystem in key order
func (r *Registry) Counters(subsystem string) []Counter {
	var out []Counter
	r.Ints.Range(func(k Key, v *atomic.Int64) {
		if k.Subsystem() == subsystem {
			out = append(out, Counter{Key: k, Value: v.Load()})
		}
	})
	return out
}
