// Package track derives race geometry from drawing surface dimensions
package track

import (
	"math"

	"github.com/lixenwraith/racecast/parameter"
)

// Track is immutable lane and line geometry for one surface size
// Recomputed on init, resize and reset; never mutated during simulation
type Track struct {
	Width     float64
	Height    float64
	LaneCount int

	// Racer lane bands: lanes partition Height-2*LanePadding evenly
	LaneTop    float64
	LaneHeight float64

	// Asphalt band and divider spacing: partitions Height-2*SurfaceInset evenly
	SurfaceTop     float64
	SurfaceBottom  float64
	DividerSpacing float64

	StartX  float64
	FinishX float64
}

// Recompute returns the geometry for a surface of the given size
// Degenerate input is clamped: negative sizes become 0, laneCount below 1 becomes 1
func Recompute(width, height float64, laneCount int) Track {
	width = math.Max(0, width)
	height = math.Max(0, height)
	if laneCount < 1 {
		laneCount = 1
	}
	lanes := float64(laneCount)

	return Track{
		Width:          width,
		Height:         height,
		LaneCount:      laneCount,
		LaneTop:        parameter.LanePadding,
		LaneHeight:     (height - 2*parameter.LanePadding) / lanes,
		SurfaceTop:     parameter.SurfaceInset,
		SurfaceBottom:  height - parameter.SurfaceInset,
		DividerSpacing: (height - 2*parameter.SurfaceInset) / lanes,
		StartX:         parameter.StartX,
		FinishX:        width - parameter.FinishInset,
	}
}

// Boundary is the furthest x a racer may reach; reaching it finishes the race
func (t Track) Boundary() float64 {
	return t.FinishX - parameter.FinishMargin
}

// ProgressSpan is the distance used to normalize race progress, floored for narrow surfaces
func (t Track) ProgressSpan() float64 {
	return math.Max(parameter.MinProgressSpan, t.Boundary()-t.StartX)
}

// LaneCenter returns the vertical centre of lane index i (0-based)
func (t Track) LaneCenter(i int) float64 {
	return t.LaneTop + float64(i)*t.LaneHeight + t.LaneHeight*0.5
}

// DividerY returns the y of the divider between lanes i-1 and i, valid for 1 <= i < LaneCount
func (t Track) DividerY(i int) float64 {
	return t.SurfaceTop + float64(i)*t.DividerSpacing
}
