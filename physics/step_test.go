package physics

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/racecast/component"
	"github.com/lixenwraith/racecast/parameter"
	"github.com/lixenwraith/racecast/system"
	"github.com/lixenwraith/racecast/track"
)

func newField(t *testing.T, seed uint64) (track.Track, []component.Racer, *Integrator) {
	t.Helper()
	tr := track.Recompute(960, 400, 4)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b9))
	racers := system.SpawnField(tr, rng, system.DefaultFieldRanges())
	return tr, racers, NewIntegrator(parameter.MaxFrameDelta, rng)
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"negative", -5 * time.Millisecond, 0},
		{"zero", 0, 0},
		{"normal", 16 * time.Millisecond, 16 * time.Millisecond},
		{"at cap", 64 * time.Millisecond, 64 * time.Millisecond},
		{"stall", 3 * time.Second, 64 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampDelta(tt.in, parameter.MaxFrameDelta))
		})
	}
}

func TestAdvanceStallIsCapped(t *testing.T) {
	tr, racers, in := newField(t, 1)

	res := in.Advance(racers, tr, 10*time.Second, 0)
	assert.Equal(t, parameter.MaxFrameDelta, res.Delta)

	maxV := parameter.SpeedMax*parameter.BoostMax*(parameter.PulseBase+parameter.PulseAmplitude) +
		parameter.SwayVelocityScale*parameter.SwayAmplitude + parameter.JitterAmplitude/2
	for _, r := range racers {
		assert.LessOrEqual(t, r.X-tr.StartX, maxV*parameter.MaxFrameDelta.Seconds()+1e-9)
	}
}

func TestAdvanceMonotonicAndBounded(t *testing.T) {
	tr, racers, in := newField(t, 7)
	rng := rand.New(rand.NewPCG(5, 5))

	prev := make([]float64, len(racers))
	for i, r := range racers {
		prev[i] = r.X
	}

	tMs := 0.0
	for step := 0; step < 2000; step++ {
		dt := time.Duration(rng.IntN(80)) * time.Millisecond
		tMs += float64(dt.Milliseconds())
		in.Advance(racers, tr, dt, tMs)

		for i, r := range racers {
			require.GreaterOrEqual(t, r.X, prev[i], "racer %d moved backward at step %d", r.ID, step)
			require.GreaterOrEqual(t, r.X, tr.StartX)
			require.LessOrEqual(t, r.X, tr.Boundary())
			prev[i] = r.X
		}
	}
}

func TestAdvanceReachesFinishWithinBoundedSteps(t *testing.T) {
	tr, racers, in := newField(t, 11)

	// Slowest admissible velocity bounds the number of steps
	minV := parameter.SpeedMin*parameter.BoostMin*(parameter.PulseBase-parameter.PulseAmplitude) -
		parameter.SwayVelocityScale*parameter.SwayAmplitude - parameter.JitterAmplitude/2
	require.Greater(t, minV, 0.0)
	const dt = 16 * time.Millisecond
	maxSteps := int(math.Ceil((tr.Boundary()-tr.StartX)/(minV*dt.Seconds()))) + 1

	var res StepResult
	steps := 0
	tMs := 0.0
	for steps = 1; steps <= maxSteps; steps++ {
		tMs += 16
		res = in.Advance(racers, tr, dt, tMs)
		if res.AnyFinished {
			break
		}
	}
	require.True(t, res.AnyFinished, "no finish after %d steps", maxSteps)
	assert.Equal(t, tr.Boundary(), res.LeadingX)

	winner, ok := PickWinner(racers)
	require.True(t, ok)
	for _, r := range racers {
		assert.LessOrEqual(t, r.X, racers[winner-1].X)
	}
	assert.Equal(t, 100.0, Progress(tr, res.LeadingX))
}

func TestAdvanceShrunkBoundaryHoldsPosition(t *testing.T) {
	tr := track.Recompute(960, 400, 1)
	racers := []component.Racer{{ID: 1, BaseSpeed: 200, Boost: 1, X: 700}}
	in := NewIntegrator(parameter.MaxFrameDelta, rand.New(rand.NewPCG(1, 1)))

	shrunk := track.Recompute(600, 400, 1)
	res := in.Advance(racers, shrunk, 16*time.Millisecond, 0)

	assert.True(t, res.AnyFinished)
	assert.Equal(t, 700.0, racers[0].X)
	assert.Less(t, shrunk.Boundary(), tr.Boundary())
}

func TestAdvanceZeroDelta(t *testing.T) {
	tr, racers, in := newField(t, 3)

	res := in.Advance(racers, tr, 0, 1234)
	assert.False(t, res.AnyFinished)
	assert.Equal(t, tr.StartX, res.LeadingX)
	assert.Equal(t, 0.0, Progress(tr, res.LeadingX))
}

func TestAdvanceEmptyField(t *testing.T) {
	tr := track.Recompute(960, 400, 4)
	in := NewIntegrator(parameter.MaxFrameDelta, rand.New(rand.NewPCG(1, 1)))

	res := in.Advance(nil, tr, 16*time.Millisecond, 0)
	assert.False(t, res.AnyFinished)
	assert.Equal(t, tr.StartX, res.LeadingX)
}

func TestProgressClamped(t *testing.T) {
	tr := track.Recompute(960, 400, 4)

	assert.Equal(t, 0.0, Progress(tr, tr.StartX-50))
	assert.Equal(t, 50.0, Progress(tr, tr.StartX+tr.ProgressSpan()/2))
	assert.Equal(t, 100.0, Progress(tr, tr.Boundary()+100))
}

func TestPickWinner(t *testing.T) {
	tests := []struct {
		name   string
		racers []component.Racer
		want   int
	}{
		{"clear leader", []component.Racer{{ID: 1, X: 10}, {ID: 2, X: 30}, {ID: 3, X: 20}}, 2},
		{"tie goes to lowest id", []component.Racer{{ID: 1, X: 10}, {ID: 2, X: 30}, {ID: 3, X: 30}}, 2},
		{"tie with unordered input", []component.Racer{{ID: 4, X: 30}, {ID: 2, X: 30}, {ID: 3, X: 5}}, 2},
		{"single", []component.Racer{{ID: 1, X: 0}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickWinner(tt.racers)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := PickWinner(nil)
	assert.False(t, ok)
}

func TestMotionTermBounds(t *testing.T) {
	for tMs := 0.0; tMs < 20000; tMs += 37 {
		for id := 1; id <= 4; id++ {
			p := Pulse(tMs, id)
			assert.GreaterOrEqual(t, p, parameter.PulseBase-parameter.PulseAmplitude)
			assert.LessOrEqual(t, p, parameter.PulseBase+parameter.PulseAmplitude)
		}
		s := Sway(tMs, 1.3)
		assert.LessOrEqual(t, math.Abs(s), parameter.SwayAmplitude)
	}

	rng := rand.New(rand.NewPCG(2, 2))
	for i := 0; i < 1000; i++ {
		assert.LessOrEqual(t, math.Abs(Jitter(rng)), parameter.JitterAmplitude/2)
	}
}

func TestMotionTermsArePureInTime(t *testing.T) {
	r := component.Racer{ID: 2, BaseSpeed: 180, Boost: 1.1, SwayPhase: 0.4}
	assert.Equal(t, Velocity(r, 5000, 0.1), Velocity(r, 5000, 0.1))
	assert.NotEqual(t, Velocity(r, 5000, 0), Velocity(r, 5400, 0))
}
