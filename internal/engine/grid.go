// Package engine computes the diecut geometry of a flat-bottom paper bag and
// decides which diecut variant fits the cutting machine.
package engine

import "github.com/piwi3910/BagCut/internal/model"

// Horizontal holds the vertical fold/cut stations along the X axis, in points.
type Horizontal struct {
	A float64 `json:"a"` // End of the glue flap
	B float64 `json:"b"` // End of the front panel
	C float64 `json:"c"` // Side gusset fold
	D float64 `json:"d"` // End of the first side gusset
	E float64 `json:"e"` // End of the back panel
	F float64 `json:"f"` // Second side gusset fold
	H float64 `json:"h"` // End of the second side gusset
}

// Ordered returns the stations from left to right.
func (h Horizontal) Ordered() []float64 {
	return []float64{h.A, h.B, h.C, h.D, h.E, h.F, h.H}
}

// Vertical holds the horizontal fold/cut stations along the Y axis, in points.
type Vertical struct {
	A float64 `json:"a"` // Bottom fold
	B float64 `json:"b"` // One-sided bottom crease
	C float64 `json:"c"` // Top of the bag body
	D float64 `json:"d"` // Top of the handle margin
}

// Ordered returns the stations from bottom to top.
func (v Vertical) Ordered() []float64 {
	return []float64{v.A, v.B, v.C, v.D}
}

// Grid is the station layout shared by both diecut variants.
type Grid struct {
	Ph Horizontal `json:"ph"`
	Pv Vertical   `json:"pv"`
}

// ComputeGrid derives the station grid from a bag spec.
func ComputeGrid(s model.BagSpec) Grid {
	glue, w, d := s.GlueMargin, s.Width, s.Depth
	return Grid{
		Ph: Horizontal{
			A: glue,
			B: glue + w,
			C: glue + w + d/2,
			D: glue + w + d,
			E: glue + w*2 + d,
			F: glue + w*2 + d*1.5,
			H: glue + w*2 + d*2,
		},
		Pv: Vertical{
			A: d/2 + s.BottomMargin,
			B: d + s.BottomMargin,
			C: s.Height + d/2 + s.BottomMargin,
			D: s.Height + d/2 + s.BottomMargin + s.HandleMargin,
		},
	}
}

// BoardSize returns the unpadded width and height of a diecut variant in points.
func BoardSize(s model.BagSpec, v model.Variant) (float64, float64) {
	height := s.HandleMargin + s.Height + s.Depth/2 + s.BottomMargin
	if v == model.VariantHalf {
		return s.GlueMargin + s.Width + s.Depth, height
	}
	return s.GlueMargin + s.Width*2 + s.Depth*2, height
}

// PaddedBoardSize returns the board size grown by the bleed on every side.
func PaddedBoardSize(s model.BagSpec, v model.Variant) (float64, float64) {
	w, h := BoardSize(s, v)
	return w + s.Bleed*2, h + s.Bleed*2
}
