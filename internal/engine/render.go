package engine

import (
	"strconv"

	"github.com/piwi3910/BagCut/internal/model"
)

// Label placement, in points.
const (
	labelShiftLeft   = 13.0 // Horizontal labels start this far left of the panel midpoint
	labelDropFromTop = 10.0 // Horizontal labels hang this far below the board top
	sideLabelX       = 10.0 // X of the rotated labels along the left margin
	sideLabelAngle   = 90.0
)

// Render returns the commands for the given variant.
func Render(s model.BagSpec, g Grid, v model.Variant) []model.RenderCommand {
	if v == model.VariantHalf {
		return RenderHalf(s, g)
	}
	return RenderFull(s, g)
}

// RenderHalf draws one half of the bag: glue flap, front panel and one side
// gusset.
func RenderHalf(s model.BagSpec, g Grid) []model.RenderCommand {
	bW, bH := BoardSize(s, model.VariantHalf)
	bleed := s.Bleed
	ph, pv := g.Ph, g.Pv

	var cmds []model.RenderCommand

	// Vertical lines
	for _, x := range []float64{ph.A, ph.B, ph.C} {
		cmds = append(cmds, verticalLine(x, bleed, bH))
	}

	// Horizontal lines
	cmds = append(cmds,
		horizontalLine(pv.A, bleed, bW),
		horizontalLine(pv.C, bleed, bW),
		// One-sided bottom crease
		line(-bleed, pv.B, ph.C, pv.B),
	)

	// Diagonal lines
	cmds = append(cmds,
		line(ph.C, pv.B, ph.D+bleed, pv.A-bleed),
		line(ph.C, pv.B, ph.C-pv.B-bleed, -bleed),
		glueFlapLine(s, g),
	)

	// Horizontal sizes
	cmds = append(cmds,
		panelLabel(s.GlueMargin, 0, ph.A, bH),
		panelLabel(s.Width, ph.A, ph.B, bH),
		panelLabel(s.Depth/2, ph.B, ph.C, bH),
		panelLabel(s.Depth/2, ph.C, ph.D, bH),
	)

	return append(cmds, sideLabels(s, g)...)
}

// RenderFull draws the whole bag: glue flap, front, gusset, back, gusset.
func RenderFull(s model.BagSpec, g Grid) []model.RenderCommand {
	bW, bH := BoardSize(s, model.VariantFull)
	bleed := s.Bleed
	ph, pv := g.Ph, g.Pv

	var cmds []model.RenderCommand

	// Vertical lines
	for _, x := range []float64{ph.A, ph.B, ph.C, ph.D, ph.E, ph.F} {
		cmds = append(cmds, verticalLine(x, bleed, bH))
	}

	// Horizontal lines
	cmds = append(cmds,
		horizontalLine(pv.A, bleed, bW),
		horizontalLine(pv.C, bleed, bW),
		// One-sided bottom crease between the two gusset folds
		line(ph.C, pv.B, ph.F, pv.B),
	)

	// Diagonal lines
	cmds = append(cmds,
		line(ph.F, pv.B, ph.H+bleed, pv.A-bleed),
		line(ph.F, pv.B, ph.F-pv.B-bleed, -bleed),
		line(ph.C, pv.B, ph.C+pv.B+bleed, -bleed),
		line(ph.C, pv.B, ph.C-pv.B-bleed, -bleed),
		glueFlapLine(s, g),
	)

	// Horizontal sizes
	cmds = append(cmds,
		panelLabel(s.GlueMargin, 0, ph.A, bH),
		panelLabel(s.Width, ph.A, ph.B, bH),
		panelLabel(s.Depth/2, ph.B, ph.C, bH),
		panelLabel(s.Depth/2, ph.C, ph.D, bH),
		panelLabel(s.Width, ph.D, ph.E, bH),
		panelLabel(s.Depth/2, ph.E, ph.F, bH),
		panelLabel(s.Depth/2, ph.F, ph.H, bH),
	)

	return append(cmds, sideLabels(s, g)...)
}

func line(x1, y1, x2, y2 float64) model.RenderCommand {
	return model.Line(model.Point2D{X: x1, Y: y1}, model.Point2D{X: x2, Y: y2})
}

// verticalLine spans the whole board height plus bleed at station x.
func verticalLine(x, bleed, boardHeight float64) model.RenderCommand {
	return line(x, -bleed, x, boardHeight+bleed)
}

// horizontalLine spans the whole board width plus bleed at station y.
func horizontalLine(y, bleed, boardWidth float64) model.RenderCommand {
	return line(-bleed, y, boardWidth+bleed, y)
}

// glueFlapLine is the 45 degree cut across the bottom of the glue flap.
func glueFlapLine(s model.BagSpec, g Grid) model.RenderCommand {
	bleed := s.Bleed
	return line(g.Ph.A+g.Pv.A+bleed, -bleed, -bleed, g.Pv.A+s.GlueMargin+bleed)
}

// panelLabel prints a panel size centred between two stations near the top.
func panelLabel(size, from, to, boardHeight float64) model.RenderCommand {
	pos := model.Point2D{X: (from+to)/2 - labelShiftLeft, Y: boardHeight - labelDropFromTop}
	return model.Label(mmText(size), pos, 0)
}

// sideLabels prints the bottom, body and handle heights along the left edge.
func sideLabels(s model.BagSpec, g Grid) []model.RenderCommand {
	pv := g.Pv
	return []model.RenderCommand{
		model.Label(mmText(s.Depth/2+s.BottomMargin), model.Point2D{X: sideLabelX, Y: pv.A / 2}, sideLabelAngle),
		model.Label(mmText(s.Height), model.Point2D{X: sideLabelX, Y: (pv.A + pv.C) / 2}, sideLabelAngle),
		model.Label(mmText(s.HandleMargin), model.Point2D{X: sideLabelX, Y: (pv.C + pv.D) / 2}, sideLabelAngle),
	}
}

// mmText formats a length in points as unrounded millimetres.
func mmText(pt float64) string {
	return strconv.FormatFloat(model.PtToMm(pt), 'f', -1, 64)
}
