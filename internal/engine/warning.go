package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/BagCut/internal/model"
)

// UnfitAdvice is the fixed text drawn when not even the half diecut fits.
const UnfitAdvice = "The bag will not fit into any paper.\nTry decrease margins, bleeds or bag size."

// SizeReport formats the current drawing size against the machine limit,
// both rounded to whole millimetres.
func SizeReport(bounds model.Rect, limit model.MachineLimit) string {
	return fmt.Sprintf("\nCurrent size: %.0f x %.0f mm\nMax size: %.0f x %.0f mm",
		math.Round(model.PtToMm(bounds.Width())),
		math.Round(model.PtToMm(bounds.Height())),
		math.Round(limit.Width),
		math.Round(limit.Height))
}

// WarningLabels builds the two oversize labels, placed relative to the
// visible bounds reported by the host canvas.
func WarningLabels(bounds model.Rect, limit model.MachineLimit) []model.RenderCommand {
	x := bounds.Right / 2
	return []model.RenderCommand{
		model.Label(UnfitAdvice, model.Point2D{X: x, Y: bounds.Top / 1.8}, 0),
		model.Label(SizeReport(bounds, limit), model.Point2D{X: x, Y: bounds.Top / 2.2}, 0),
	}
}
