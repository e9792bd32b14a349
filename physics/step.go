package physics

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/samber/lo"

	"github.com/lixenwraith/racecast/component"
	"github.com/lixenwraith/racecast/track"
)

// StepResult reports the outcome of one simulation step
type StepResult struct {
	// AnyFinished is true when at least one racer sits on (or past) the finish boundary after this step
	AnyFinished bool
	// LeadingX is the furthest racer position after this step
	LeadingX float64
	// Delta is the clamped step duration actually integrated
	Delta time.Duration
}

// Integrator advances racers over variable frame deltas
// Not safe for concurrent use; owned by the frame callback
type Integrator struct {
	MaxDelta time.Duration
	Rand     *rand.Rand
}

// NewIntegrator creates an integrator with the given delta cap and random source
func NewIntegrator(maxDelta time.Duration, rng *rand.Rand) *Integrator {
	return &Integrator{MaxDelta: maxDelta, Rand: rng}
}

// ClampDelta bounds dt to [0, max]
func ClampDelta(dt, max time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if max > 0 && dt > max {
		return max
	}
	return dt
}

// Advance moves every racer by its instantaneous velocity over dt, in place
// tMs is wall-clock time in milliseconds driving the periodic motion terms
// Positions never decrease and never pass the boundary from below
func (in *Integrator) Advance(racers []component.Racer, tr track.Track, dt time.Duration, tMs float64) StepResult {
	dt = ClampDelta(dt, in.MaxDelta)
	secs := dt.Seconds()
	boundary := tr.Boundary()

	res := StepResult{LeadingX: math.Inf(-1), Delta: dt}
	for i := range racers {
		r := &racers[i]
		v := Velocity(*r, tMs, Jitter(in.Rand))

		nx := r.X + math.Max(0, v)*secs
		if nx >= boundary {
			// A racer already past a shrunken boundary holds position rather than moving backward
			nx = math.Max(r.X, boundary)
			res.AnyFinished = true
		}
		r.X = nx
		res.LeadingX = math.Max(res.LeadingX, nx)
	}

	if len(racers) == 0 {
		res.LeadingX = tr.StartX
	}
	return res
}

// Progress converts the leading position into a percentage of the track, clamped to [0, 100]
func Progress(tr track.Track, leadingX float64) float64 {
	pct := (leadingX - tr.StartX) / tr.ProgressSpan() * 100
	return math.Min(100, math.Max(0, pct))
}

// PickWinner returns the id of the furthest racer, ties going to the lowest id
// Returns false for an empty field
func PickWinner(racers []component.Racer) (int, bool) {
	if len(racers) == 0 {
		return 0, false
	}
	best := lo.MaxBy(racers, func(a, b component.Racer) bool {
		return a.X > b.X || (a.X == b.X && a.ID < b.ID)
	})
	return best.ID, true
}
