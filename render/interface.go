package render

import "github.com/fogleman/gg"

// SystemRenderer is implemented by each layer of the race picture
type SystemRenderer interface {
	Render(ctx RenderContext, dc *gg.Context)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
