package physics

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/racecast/component"
	"github.com/lixenwraith/racecast/parameter"
)

// Motion terms are pure functions of wall-clock milliseconds and per-racer seeds
// Racers share the clock, so visual desync comes only from id and phase

// Pulse returns the engine pulse multiplier, oscillating around PulseBase
func Pulse(tMs float64, id int) float64 {
	return parameter.PulseBase + math.Sin(tMs/parameter.PulsePeriodMs+float64(id))*parameter.PulseAmplitude
}

// Sway returns the unitless lateral sway term in [-SwayAmplitude, SwayAmplitude]
func Sway(tMs, phase float64) float64 {
	return math.Sin((tMs/parameter.SwayPeriodMs+phase)*parameter.SwayFrequency) * parameter.SwayAmplitude
}

// Jitter draws a small zero-centred velocity perturbation in px/s
func Jitter(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * parameter.JitterAmplitude
}

// Velocity combines the motion terms into px/s for one racer
// Result may be negative only for out-of-policy tuning; Advance floors displacement at zero
func Velocity(r component.Racer, tMs, jitter float64) float64 {
	return r.BaseSpeed*r.Boost*Pulse(tMs, r.ID) + parameter.SwayVelocityScale*Sway(tMs, r.SwayPhase) + jitter
}
