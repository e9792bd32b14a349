package system

import (
	"math/rand/v2"

	"github.com/lixenwraith/racecast/component"
	"github.com/lixenwraith/racecast/parameter"
	"github.com/lixenwraith/racecast/parameter/visual"
	"github.com/lixenwraith/racecast/track"
)

// FieldRanges bounds the uniform draws for racer tuning
// Bounds are policy, any min <= max pair is valid
type FieldRanges struct {
	SpeedMin float64
	SpeedMax float64
	BoostMin float64
	BoostMax float64
}

// DefaultFieldRanges returns the stock speed and boost bands
func DefaultFieldRanges() FieldRanges {
	return FieldRanges{
		SpeedMin: parameter.SpeedMin,
		SpeedMax: parameter.SpeedMax,
		BoostMin: parameter.BoostMin,
		BoostMax: parameter.BoostMax,
	}
}

// SpawnField creates one racer per lane of tr, all lined up on the start line
// Replaces the previous field wholesale; nothing carries over between races
func SpawnField(tr track.Track, rng *rand.Rand, ranges FieldRanges) []component.Racer {
	racers := make([]component.Racer, tr.LaneCount)
	for i := range racers {
		racers[i] = component.Racer{
			ID:        i + 1,
			BaseSpeed: uniform(rng, ranges.SpeedMin, ranges.SpeedMax),
			Boost:     uniform(rng, ranges.BoostMin, ranges.BoostMax),
			SwayPhase: rng.Float64() * parameter.SwayPhaseMax,
			X:         tr.StartX,
			LaneY:     tr.LaneCenter(i),
			Livery:    visual.Liveries[i%len(visual.Liveries)],
		}
	}
	return racers
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
