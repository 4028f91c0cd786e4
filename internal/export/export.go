// Package export writes generated diecuts to PDF proofs, SVG, PNG previews,
// DXF drawings and spreadsheet reports.
package export

import (
	"fmt"

	"github.com/piwi3910/BagCut/internal/engine"
	"github.com/piwi3910/BagCut/internal/model"
	"github.com/piwi3910/BagCut/internal/surface"
)

// Diecut bundles one job with its generation result and recorded drawing.
type Diecut struct {
	Job     model.Job
	Result  engine.Result
	Drawing model.Drawing
}

// NewDiecut records the result with the given label font size.
func NewDiecut(job model.Job, res engine.Result, fontSize float64) Diecut {
	return Diecut{Job: job, Result: res, Drawing: surface.Record(res, fontSize)}
}

// Title returns the job label, falling back to the descriptor.
func (d Diecut) Title() string {
	if d.Job.Label != "" {
		return d.Job.Label
	}
	return d.Result.Spec.Descriptor
}

func (d Diecut) validate() error {
	if d.Drawing.Bounds.IsEmpty() || len(d.Drawing.Lines()) == 0 {
		return fmt.Errorf("nothing drawn for %q", d.Title())
	}
	return nil
}

// frame maps document points onto a millimetre page around a reference
// rectangle, with an optional margin on every side.
type frame struct {
	ref    model.Rect
	margin float64 // mm
}

func (f frame) width() float64  { return model.PtToMm(f.ref.Width()) + 2*f.margin }
func (f frame) height() float64 { return model.PtToMm(f.ref.Height()) + 2*f.margin }

// x returns the page X of a document X.
func (f frame) x(pt float64) float64 { return model.PtToMm(pt-f.ref.Left) + f.margin }

// yUp returns the page Y of a document Y with the origin at the bottom.
func (f frame) yUp(pt float64) float64 { return model.PtToMm(pt-f.ref.Bottom) + f.margin }

// yDown returns the page Y of a document Y with the origin at the top.
func (f frame) yDown(pt float64) float64 { return model.PtToMm(f.ref.Top-pt) + f.margin }
