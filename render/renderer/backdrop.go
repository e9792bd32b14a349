package renderer

import (
	"github.com/fogleman/gg"

	"github.com/lixenwraith/racecast/parameter/visual"
	"github.com/lixenwraith/racecast/render"
)

// BackdropRenderer fills the whole surface with the vertical night gradient
type BackdropRenderer struct{}

func NewBackdropRenderer() *BackdropRenderer {
	return &BackdropRenderer{}
}

func (r *BackdropRenderer) Render(ctx render.RenderContext, dc *gg.Context) {
	w, h := float64(ctx.Width), float64(ctx.Height)
	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, visual.RgbBackdropTop)
	grad.AddColorStop(1, visual.RgbBackdropBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

// AsphaltRenderer draws the track band between the surface insets
type AsphaltRenderer struct{}

func NewAsphaltRenderer() *AsphaltRenderer {
	return &AsphaltRenderer{}
}

func (r *AsphaltRenderer) Render(ctx render.RenderContext, dc *gg.Context) {
	tr := ctx.Track
	bandH := tr.SurfaceBottom - tr.SurfaceTop
	if bandH <= 0 {
		return
	}
	grad := gg.NewLinearGradient(0, 0, 0, float64(ctx.Height))
	grad.AddColorStop(0, visual.RgbAsphaltTop)
	grad.AddColorStop(1, visual.RgbAsphaltBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, tr.SurfaceTop, float64(ctx.Width), bandH)
	dc.Fill()
}
