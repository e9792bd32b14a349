package engine

import "time"

// RacePhase is the race lifecycle position
type RacePhase int

const (
	PhaseIdle RacePhase = iota
	PhaseRunning
	PhaseFinished
)

var phaseNames = [...]string{"Idle", "Running", "Finished"}

func (p RacePhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}

// phaseFromState maps a race FSM state name to its phase
func phaseFromState(name string) RacePhase {
	for i, n := range phaseNames {
		if n == name {
			return RacePhase(i)
		}
	}
	return PhaseIdle
}

// RaceState is a copy of the race's observable values
type RaceState struct {
	Phase       RacePhase
	StartedAt   time.Time // First start since reset, zero before
	EndedAt     time.Time // Finish instant, zero until Finished
	ElapsedMs   int64
	WinnerID    int // 0 = unresolved
	ProgressPct float64
}

// HasWinner reports whether the winner has been resolved
func (s RaceState) HasWinner() bool {
	return s.WinnerID > 0
}
