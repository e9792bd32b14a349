package renderer

import "github.com/lixenwraith/racecast/render"

// Pipeline is the assembled race picture
type Pipeline struct {
	*render.RenderOrchestrator
	Hud *HudRenderer
}

// NewPipeline registers every race layer on an orchestrator bound to surface
func NewPipeline(surface *render.Surface) *Pipeline {
	o := render.NewRenderOrchestrator(surface)
	hud := NewHudRenderer()

	o.Register(NewBackdropRenderer(), render.PriorityBackground)
	o.Register(NewAsphaltRenderer(), render.PriorityTrack)
	o.Register(NewLaneRenderer(), render.PriorityLanes)
	o.Register(NewFinishRenderer(), render.PriorityFinish)
	o.Register(NewRacerRenderer(), render.PriorityEntities)
	o.Register(hud, render.PriorityUI)

	return &Pipeline{RenderOrchestrator: o, Hud: hud}
}
