package render

import (
	"github.com/lixenwraith/racecast/component"
	"github.com/lixenwraith/racecast/track"
)

// RenderContext provides read-only frame state for renderers, passed by value
// Racers is a copy owned by the frame; renderers must not retain it
type RenderContext struct {
	Track  track.Track
	Racers []component.Racer

	ElapsedMs int64
	WinnerID  int // 0 = unresolved
	Phase     string

	// Surface dimensions in pixels, set by the orchestrator
	Width  int
	Height int
}

// HasWinner reports whether the winner banner should be drawn
func (rc RenderContext) HasWinner() bool {
	return rc.WinnerID > 0
}
