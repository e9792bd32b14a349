package parameter

import "math"

// Field composition
const (
	// DefaultLaneCount is the number of racers, one per lane
	DefaultLaneCount = 4
)

// Racer performance ranges, sampled uniformly on every reset
const (
	// SpeedMin is the lower bound of base speed in px/s
	SpeedMin = 140.0
	// SpeedMax is the upper bound of base speed in px/s
	SpeedMax = 260.0

	// BoostMin is the lower bound of the engine boost multiplier
	BoostMin = 0.9
	// BoostMax is the upper bound of the engine boost multiplier
	BoostMax = 1.2

	// SwayPhaseMax bounds the per-racer sway phase offset
	SwayPhaseMax = 2 * math.Pi
)

// Motion terms, all periodic in wall-clock milliseconds
const (
	// PulseBase is the mean of the engine pulse multiplier
	PulseBase = 0.9
	// PulseAmplitude is the swing of the engine pulse multiplier
	PulseAmplitude = 0.08
	// PulsePeriodMs divides wall-clock time before the pulse sine
	PulsePeriodMs = 1100.0

	// SwayPeriodMs divides wall-clock time before the sway sine
	SwayPeriodMs = 500.0
	// SwayFrequency multiplies the sway argument
	SwayFrequency = 2.0
	// SwayAmplitude scales the raw sway sine
	SwayAmplitude = 0.5
	// SwayVelocityScale converts sway into px/s
	SwayVelocityScale = 8.0

	// JitterAmplitude is the full width of the uniform jitter band in px/s, centred on zero
	JitterAmplitude = 0.6
)

// SeedStream is mixed into the user seed to form the second PCG word
const SeedStream uint64 = 0x9e3779b97f4a7c15
