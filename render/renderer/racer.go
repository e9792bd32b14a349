package renderer

import (
	"github.com/fogleman/gg"

	"github.com/lixenwraith/racecast/component"
	"github.com/lixenwraith/racecast/parameter/visual"
	"github.com/lixenwraith/racecast/render"
)

// RacerRenderer draws each car: shadow, body, cabin highlight, headlights
type RacerRenderer struct{}

func NewRacerRenderer() *RacerRenderer {
	return &RacerRenderer{}
}

func (r *RacerRenderer) Render(ctx render.RenderContext, dc *gg.Context) {
	for _, racer := range ctx.Racers {
		r.drawCar(dc, racer)
	}
}

func (r *RacerRenderer) drawCar(dc *gg.Context, racer component.Racer) {
	const w, h = visual.CarWidth, visual.CarHeight
	x, y := racer.X, racer.LaneY

	// Shadow
	shadow := racer.Livery.Shadow
	shadow.A = uint8(float64(shadow.A) * visual.ShadowAlpha)
	dc.SetColor(shadow)
	dc.DrawEllipse(x+visual.ShadowOffset, y+visual.ShadowOffset, w*0.6, h*0.55)
	dc.Fill()

	// Body
	grad := gg.NewLinearGradient(x, y-h/2, x, y+h/2)
	grad.AddColorStop(0, racer.Livery.Body)
	grad.AddColorStop(1, visual.RgbCarUnderside)
	dc.SetFillStyle(grad)
	dc.DrawRoundedRectangle(x-w/2, y-h/2, w, h, visual.CarCornerRadius)
	dc.Fill()

	// Cabin
	dc.SetColor(visual.RgbCabin)
	dc.DrawRoundedRectangle(x-w*0.15, y-h*0.35, w*0.35, h*0.7, visual.CabinRadius)
	dc.Fill()

	// Headlights
	dc.SetColor(visual.RgbHeadlight)
	dc.DrawRectangle(x+w/2-visual.LightSize, y-6, visual.LightSize, visual.LightSize)
	dc.DrawRectangle(x+w/2-visual.LightSize, y+2, visual.LightSize, visual.LightSize)
	dc.Fill()
}
