package renderer

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/racecast/parameter/visual"
	"github.com/lixenwraith/racecast/render"
)

// LaneRenderer draws dashed dividers between adjacent lanes
type LaneRenderer struct{}

func NewLaneRenderer() *LaneRenderer {
	return &LaneRenderer{}
}

func (r *LaneRenderer) Render(ctx render.RenderContext, dc *gg.Context) {
	tr := ctx.Track
	x1 := visual.LaneDividerInset
	x2 := float64(ctx.Width) - visual.LaneDividerInset
	if x2 <= x1 {
		return
	}

	dc.SetColor(visual.RgbLaneDivider)
	dc.SetLineWidth(visual.LaneDividerWidth)
	for i := 1; i < tr.LaneCount; i++ {
		dashLine(dc, x1, x2, tr.DividerY(i), visual.LaneDividerDash, visual.LaneDividerGap)
	}
	dc.Stroke()
}

// dashLine appends whole dash segments along a horizontal run; a trailing partial period is left blank
func dashLine(dc *gg.Context, x1, x2, y, dash, gap float64) {
	period := dash + gap
	steps := int(math.Floor((x2 - x1) / period))
	for i := 0; i < steps; i++ {
		sx := x1 + float64(i)*period
		dc.MoveTo(sx, y)
		dc.LineTo(sx+dash, y)
	}
}

// FinishRenderer draws the checkered strip straddling the finish line and its pole
type FinishRenderer struct{}

func NewFinishRenderer() *FinishRenderer {
	return &FinishRenderer{}
}

func (r *FinishRenderer) Render(ctx render.RenderContext, dc *gg.Context) {
	tr := ctx.Track
	x := tr.FinishX
	height := tr.SurfaceBottom - tr.SurfaceTop
	size := visual.CheckerSize

	for y := 0.0; y < height; y += size {
		if int(y/size)%2 == 0 {
			dc.SetColor(visual.RgbCheckerLight)
		} else {
			dc.SetColor(visual.RgbCheckerDark)
		}
		dc.DrawRectangle(x-size, tr.SurfaceTop+y, size, size)
		dc.DrawRectangle(x, tr.SurfaceTop+y, size, size)
		dc.Fill()
	}

	if height > 0 {
		dc.SetColor(visual.RgbFinishPole)
		dc.DrawRectangle(x-visual.FinishPoleOff, tr.SurfaceTop, visual.FinishPoleW, height)
		dc.Fill()
	}
}
