package parameter

// Track geometry in surface pixels
const (
	// StartX is where every racer lines up
	StartX = 40.0

	// LanePadding is the vertical inset above the first and below the last lane centre band
	LanePadding = 40.0

	// SurfaceInset is the vertical inset of the asphalt band and lane dividers
	SurfaceInset = 30.0

	// FinishInset is the distance from the right edge to the finish line
	FinishInset = 80.0

	// FinishMargin keeps racers short of the finish line; reaching finishX-FinishMargin finishes the race
	FinishMargin = 20.0

	// MinProgressSpan floors the progress denominator on very narrow surfaces
	MinProgressSpan = 20.0
)

// Default drawing surface
const (
	DefaultSurfaceWidth  = 960
	DefaultSurfaceHeight = 400
)
