package component

import (
	"github.com/lixenwraith/racecast/parameter/visual"
)

// Racer is one competitor's identity, tuning and kinematic state
// ID is 1-based and equals lane index + 1; LaneY is fixed at spawn
type Racer struct {
	ID int

	BaseSpeed float64 // px/s
	Boost     float64 // engine multiplier
	SwayPhase float64 // radians, desynchronizes periodic terms between racers

	X     float64
	LaneY float64

	Livery visual.Livery
}

// Lane returns the 0-based lane index
func (r Racer) Lane() int {
	return r.ID - 1
}
