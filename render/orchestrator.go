package render

import "github.com/fogleman/gg"

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
type RenderOrchestrator struct {
	surface   *Surface
	renderers []rendererEntry
	regCount  int
}

// NewRenderOrchestrator creates an orchestrator drawing onto the given surface
func NewRenderOrchestrator(surface *Surface) *RenderOrchestrator {
	return &RenderOrchestrator{
		surface:   surface,
		renderers: make([]rendererEntry, 0, 8),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Surface returns the drawing target
func (o *RenderOrchestrator) Surface() *Surface {
	return o.surface
}

// Size returns the surface dimensions, zero without a surface
func (o *RenderOrchestrator) Size() (int, int) {
	if o.surface == nil {
		return 0, 0
	}
	return o.surface.Size()
}

// Resize changes the surface size
func (o *RenderOrchestrator) Resize(width, height int) error {
	return o.surface.Resize(width, height)
}

// Paint executes the render pipeline: every visible renderer in priority order, then present
func (o *RenderOrchestrator) Paint(ctx RenderContext) error {
	if o.surface == nil {
		return ErrSurfaceUnavailable
	}
	ctx.Width, ctx.Height = o.surface.Size()
	if ctx.Width <= 0 || ctx.Height <= 0 {
		return ErrSurfaceUnavailable
	}

	o.surface.Draw(func(dc *gg.Context) {
		for _, entry := range o.renderers {
			if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
				continue
			}
			dc.Push()
			entry.renderer.Render(ctx, dc)
			dc.Pop()
		}
	})
	return nil
}
