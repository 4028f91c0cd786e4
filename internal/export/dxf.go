package export

import (
	"fmt"

	"github.com/piwi3910/BagCut/internal/model"
	"github.com/piwi3910/BagCut/internal/surface"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"
)

// DXF layer names.
const (
	LayerCut        = "CUT"
	LayerDimensions = "DIMENSIONS"
)

// ExportDXF writes the diecut as a DXF drawing in millimetres with the
// origin at the bottom-left corner of the artboard. Lines go on the CUT
// layer and labels on the DIMENSIONS layer.
func ExportDXF(path string, d Diecut, style model.Style) error {
	if err := d.validate(); err != nil {
		return err
	}

	ref := d.Drawing.Artboard
	if ref.IsEmpty() {
		ref = d.Drawing.Bounds
	}
	f := frame{ref: ref}

	dr := dxf.NewDrawing()
	if _, err := dr.AddLayer(LayerCut, color.Red, table.LT_CONTINUOUS, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerCut, err)
	}
	if _, err := dr.AddLayer(LayerDimensions, color.Green, table.LT_CONTINUOUS, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerDimensions, err)
	}

	if err := dr.ChangeLayer(LayerCut); err != nil {
		return err
	}
	for _, l := range d.Drawing.Lines() {
		if _, err := dr.Line(f.x(l.Start.X), f.yUp(l.Start.Y), 0, f.x(l.End.X), f.yUp(l.End.Y), 0); err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}
	}

	if err := dr.ChangeLayer(LayerDimensions); err != nil {
		return err
	}
	height := model.PtToMm(style.LabelFontSize * surface.Ascent)
	for _, lbl := range d.Drawing.Labels() {
		for _, tl := range surface.LayoutLines(lbl.Text, lbl.Position, lbl.Rotation, style.LabelFontSize) {
			if tl.Text == "" {
				continue
			}
			t, err := dr.Text(tl.Text, f.x(tl.Origin.X), f.yUp(tl.Origin.Y), 0, height)
			if err != nil {
				return fmt.Errorf("failed to add text %q: %w", tl.Text, err)
			}
			t.Rotation = lbl.Rotation
		}
	}

	if err := dr.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}
