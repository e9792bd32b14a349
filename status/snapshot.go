package status

import "fmt"

// Snapshot is a point-in-time copy of the observable race and capture values
type Snapshot struct {
	RacePhase      string  `json:"race_phase"`
	ElapsedMs      int64   `json:"elapsed_ms"`
	Elapsed        string  `json:"elapsed"`
	ProgressPct    float64 `json:"progress_pct"`
	WinnerID       int     `json:"winner_id,omitempty"`
	Frames         int64   `json:"frames"`
	StaleFrames    int64   `json:"stale_frames"`
	SkippedFrames  int64   `json:"skipped_frames"`
	RecordingPhase string  `json:"recording_phase"`
	Artifact       string  `json:"artifact,omitempty"`
	Segments       int64   `json:"segments"`
	Bytes          int64   `json:"bytes"`
}

// Snapshot reads every published metric
func (r *Registry) Snapshot() Snapshot {
	elapsed := r.Ints.Get(KeyRaceElapsedMs).Load()
	return Snapshot{
		RacePhase:      r.Labels.Get(KeyRacePhase).Load(),
		ElapsedMs:      elapsed,
		Elapsed:        FormatElapsed(elapsed),
		ProgressPct:    r.Percents.Get(KeyRaceProgress).Get(),
		WinnerID:       int(r.Ints.Get(KeyRaceWinner).Load()),
		Frames:         r.Ints.Get(KeyRaceFrames).Load(),
		StaleFrames:    r.Ints.Get(KeyRaceStaleFrames).Load(),
		SkippedFrames:  r.Ints.Get(KeyRaceSkippedFrames).Load(),
		RecordingPhase: r.Labels.Get(KeyCapturePhase).Load(),
		Artifact:       r.Labels.Get(KeyCaptureArtifact).Load(),
		Segments:       r.Ints.Get(KeyCaptureSegments).Load(),
		Bytes:          r.Ints.Get(KeyCaptureBytes).Load(),
	}
}

// HasWinner reports whether the race resolved a winner
func (s Snapshot) HasWinner() bool {
	return s.WinnerID > 0
}

// ArtifactAvailable reports whether a capture artifact can be downloaded
func (s Snapshot) ArtifactAvailable() bool {
	return s.Artifact != ""
}

// Headline returns the one-line race summary shown under the track
func (s Snapshot) Headline() string {
	switch {
	case s.HasWinner():
		return WinnerText(s.WinnerID)
	case s.RacePhase == "Running":
		return "Racing..."
	default:
		return "Ready"
	}
}

// WinnerText is the announcement for a resolved race
func WinnerText(id int) string {
	return fmt.Sprintf("Winner: Car %d", id)
}

// FormatElapsed renders milliseconds as zero-padded mm:ss
func FormatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d", ms/60000, (ms/1000)%60)
}
