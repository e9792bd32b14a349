package parameter

import "time"

// Frame Loop & Engine Timing
const (
	// FrameUpdateInterval is the frame scheduler cadence (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single simulation step so stalls (backgrounding, debugger) cannot teleport racers
	MaxFrameDelta = 64 * time.Millisecond

	// FrameStallFactor is how many intervals the ticker may fall behind before the deadline is re-anchored
	FrameStallFactor = 2
)
