// Package surface provides an in-memory drawing host that records the
// primitives a diecut is made of.
package surface

import (
	"github.com/piwi3910/BagCut/internal/engine"
	"github.com/piwi3910/BagCut/internal/model"
)

// Recorder is a drawing surface and canvas in one. It keeps every primitive
// in drawing order and tracks the visible bounds of lines and label frames.
type Recorder struct {
	fontSize float64
	commands []model.RenderCommand
	bounds   model.Rect
	artboard model.Rect
}

// NewRecorder returns an empty recorder. Label extents are estimated with
// the given font size; zero or less selects DefaultFontSize.
func NewRecorder(fontSize float64) *Recorder {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &Recorder{
		fontSize: fontSize,
		bounds:   model.EmptyRect(),
		artboard: model.EmptyRect(),
	}
}

// FontSize returns the label size in points.
func (r *Recorder) FontSize() float64 { return r.fontSize }

func (r *Recorder) DrawLine(a, b model.Point2D) {
	r.commands = append(r.commands, model.Line(a, b))
	r.bounds = r.bounds.Extend(a).Extend(b)
}

func (r *Recorder) DrawLabel(text string, pos model.Point2D, rotation float64) {
	r.commands = append(r.commands, model.Label(text, pos, rotation))
	box := LabelBox(text, pos, rotation, r.fontSize)
	r.bounds = r.bounds.Extend(model.Point2D{X: box.Left, Y: box.Top}).
		Extend(model.Point2D{X: box.Right, Y: box.Bottom})
}

func (r *Recorder) VisibleBounds() model.Rect { return r.bounds }

func (r *Recorder) SetArtboardRect(rect model.Rect) { r.artboard = rect }

// Drawing returns a copy of the recorded state.
func (r *Recorder) Drawing() model.Drawing {
	cmds := make([]model.RenderCommand, len(r.commands))
	copy(cmds, r.commands)
	return model.Drawing{Commands: cmds, Bounds: r.bounds, Artboard: r.artboard}
}

// Record draws a generation result into a fresh recorder and returns the
// drawing.
func Record(res engine.Result, fontSize float64) model.Drawing {
	rec := NewRecorder(fontSize)
	engine.Draw(res, rec, rec)
	return rec.Drawing()
}
