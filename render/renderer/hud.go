package renderer

import (
	"sync/atomic"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/lixenwraith/racecast/parameter/visual"
	"github.com/lixenwraith/racecast/render"
	"github.com/lixenwraith/racecast/status"
)

// HudRenderer draws the race clock and, once resolved, the winner banner
type HudRenderer struct {
	clockFace  font.Face
	bannerFace font.Face
	hidden     atomic.Bool
}

func NewHudRenderer() *HudRenderer {
	return &HudRenderer{
		clockFace:  faceOf(visual.HudClockSize),
		bannerFace: faceOf(visual.HudBannerSize),
	}
}

// SetVisible toggles the overlay
func (r *HudRenderer) SetVisible(v bool) {
	r.hidden.Store(!v)
}

func (r *HudRenderer) IsVisible() bool {
	return !r.hidden.Load()
}

func (r *HudRenderer) Render(ctx render.RenderContext, dc *gg.Context) {
	w := float64(ctx.Width)

	dc.SetFontFace(r.clockFace)
	dc.SetColor(visual.RgbHudClock)
	dc.DrawStringAnchored("Time: "+status.FormatElapsed(ctx.ElapsedMs), w-visual.HudClockInset, visual.HudClockY, 1, 0)

	if ctx.HasWinner() {
		dc.SetFontFace(r.bannerFace)
		dc.SetColor(visual.RgbHudBanner)
		dc.DrawStringAnchored(status.WinnerText(ctx.WinnerID), w/2, visual.HudBannerY, 0.5, 0)
	}
}
