package system

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/racecast/parameter"
	"github.com/lixenwraith/racecast/track"
)

func TestSpawnFieldOnePerLane(t *testing.T) {
	tr := track.Recompute(960, 400, 4)
	rng := rand.New(rand.NewPCG(1, 2))

	racers := SpawnField(tr, rng, DefaultFieldRanges())
	require.Len(t, racers, 4)

	seenY := make(map[float64]bool)
	for i, r := range racers {
		assert.Equal(t, i+1, r.ID)
		assert.Equal(t, i, r.Lane())
		assert.Equal(t, tr.StartX, r.X, "racer %d must start on the line", r.ID)
		assert.Less(t, r.X, tr.Boundary(), "racer %d pre-finished", r.ID)
		assert.Equal(t, tr.LaneCenter(i), r.LaneY)
		assert.False(t, seenY[r.LaneY], "lane shared at y=%v", r.LaneY)
		seenY[r.LaneY] = true

		assert.GreaterOrEqual(t, r.BaseSpeed, parameter.SpeedMin)
		assert.LessOrEqual(t, r.BaseSpeed, parameter.SpeedMax)
		assert.GreaterOrEqual(t, r.Boost, parameter.BoostMin)
		assert.LessOrEqual(t, r.Boost, parameter.BoostMax)
		assert.GreaterOrEqual(t, r.SwayPhase, 0.0)
		assert.Less(t, r.SwayPhase, parameter.SwayPhaseMax)
	}
}

func TestSpawnFieldSeededIsReproducible(t *testing.T) {
	tr := track.Recompute(960, 400, 6)

	a := SpawnField(tr, rand.New(rand.NewPCG(42, 7)), DefaultFieldRanges())
	b := SpawnField(tr, rand.New(rand.NewPCG(42, 7)), DefaultFieldRanges())
	assert.Equal(t, a, b)
}

func TestSpawnFieldLiveryCycles(t *testing.T) {
	tr := track.Recompute(960, 600, 6)
	racers := SpawnField(tr, rand.New(rand.NewPCG(3, 3)), DefaultFieldRanges())

	assert.Equal(t, racers[0].Livery, racers[4].Livery)
	assert.Equal(t, racers[1].Livery, racers[5].Livery)
	assert.NotEqual(t, racers[0].Livery, racers[1].Livery)
}

func TestSpawnFieldFixedRanges(t *testing.T) {
	tr := track.Recompute(960, 400, 2)
	ranges := FieldRanges{SpeedMin: 200, SpeedMax: 200, BoostMin: 1, BoostMax: 1}

	for _, r := range SpawnField(tr, rand.New(rand.NewPCG(9, 9)), ranges) {
		assert.Equal(t, 200.0, r.BaseSpeed)
		assert.Equal(t, 1.0, r.Boost)
	}
}
