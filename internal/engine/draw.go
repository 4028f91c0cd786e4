package engine

import "github.com/piwi3910/BagCut/internal/model"

// Surface receives drawing primitives in document points.
type Surface interface {
	DrawLine(a, b model.Point2D)
	DrawLabel(text string, pos model.Point2D, rotation float64)
}

// Canvas is the document the surface draws into.
type Canvas interface {
	// VisibleBounds returns the extent of everything drawn so far.
	VisibleBounds() model.Rect
	SetArtboardRect(r model.Rect)
}

// Draw replays a result onto a surface. The oversize warning is placed after
// the geometry so that it is positioned from the drawn bounds, and the
// artboard is finally set to the visible bounds inset by the bleed.
func Draw(r Result, surface Surface, canvas Canvas) {
	for _, c := range r.Commands {
		replay(surface, c)
	}

	if r.Decision.Unfit() {
		for _, c := range WarningLabels(canvas.VisibleBounds(), r.Limit) {
			replay(surface, c)
		}
	}

	canvas.SetArtboardRect(canvas.VisibleBounds().Inset(r.Spec.Bleed))
}

func replay(surface Surface, c model.RenderCommand) {
	switch c.Kind {
	case model.CommandLine:
		surface.DrawLine(c.Start, c.End)
	case model.CommandLabel:
		surface.DrawLabel(c.Text, c.Position, c.Rotation)
	}
}
