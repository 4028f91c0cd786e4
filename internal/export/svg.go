package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/piwi3910/BagCut/internal/model"
	"github.com/piwi3910/BagCut/internal/surface"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"
)

// svgMargin is the blank border around the drawing (mm).
const svgMargin = 5.0

var (
	labelFamilyOnce sync.Once
	labelFamily     *canvas.FontFamily
	labelFamilyErr  error
)

// labelFontFamily loads the embedded label font once.
func labelFontFamily() (*canvas.FontFamily, error) {
	labelFamilyOnce.Do(func() {
		family := canvas.NewFontFamily("bagcut-labels")
		if err := family.LoadFont(lmroman10regular.TTF, 0, canvas.FontRegular); err != nil {
			labelFamilyErr = fmt.Errorf("failed to load label font: %w", err)
			return
		}
		labelFamily = family
	})
	return labelFamily, labelFamilyErr
}

// spotCMYK converts a spot colour's CMYK alternate to a colour value.
func spotCMYK(c model.SpotColor) color.CMYK {
	ink := func(v float64) uint8 { return uint8(float64(percent(v)) * 255 / 100) }
	return color.CMYK{C: ink(c.Cyan), M: ink(c.Magenta), Y: ink(c.Yellow), K: ink(c.Black)}
}

// ExportSVG writes the diecut as an SVG file in millimetres.
func ExportSVG(path string, d Diecut, style model.Style) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	if err := WriteSVG(file, d, style); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteSVG renders the diecut to w.
func WriteSVG(w io.Writer, d Diecut, style model.Style) error {
	c, err := drawCanvas(d, style)
	if err != nil {
		return err
	}

	sw := svg.New(w, c.W, c.H, nil)
	c.RenderTo(sw)
	if err := sw.Close(); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

// drawCanvas paints the recorded drawing onto a canvas with the document's
// Y-up orientation.
func drawCanvas(d Diecut, style model.Style) (*canvas.Canvas, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	family, err := labelFontFamily()
	if err != nil {
		return nil, err
	}

	f := frame{ref: d.Drawing.Bounds, margin: svgMargin}
	c := canvas.New(f.width(), f.height())
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(canvas.Transparent)

	// Cut and crease lines
	ctx.SetStrokeColor(spotCMYK(style.LineSpot))
	ctx.SetStrokeWidth(style.LineWidth)
	for _, l := range d.Drawing.Lines() {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(model.PtToMm(l.End.X-l.Start.X), model.PtToMm(l.End.Y-l.Start.Y))
		ctx.DrawPath(f.x(l.Start.X), f.yUp(l.Start.Y), p)
	}

	// Labels
	face := family.Face(style.LabelFontSize, spotCMYK(style.LabelSpot), canvas.FontRegular, canvas.FontNormal)
	for _, lbl := range d.Drawing.Labels() {
		for _, tl := range surface.LayoutLines(lbl.Text, lbl.Position, lbl.Rotation, style.LabelFontSize) {
			if tl.Text == "" {
				continue
			}
			text := canvas.NewTextLine(face, tl.Text, canvas.Left)
			x, y := f.x(tl.Origin.X), f.yUp(tl.Origin.Y)
			if lbl.Rotation == 0 {
				ctx.DrawText(x, y, text)
				continue
			}
			ctx.Push()
			ctx.ComposeView(canvas.Identity.Translate(x, y).Rotate(lbl.Rotation))
			ctx.DrawText(0, 0, text)
			ctx.Pop()
		}
	}

	// Artboard frame
	if ab := d.Drawing.Artboard; !ab.IsEmpty() {
		ctx.SetStrokeColor(spotCMYK(style.LabelSpot))
		ctx.SetStrokeWidth(0.2)
		ctx.SetDashes(0, 3, 2)
		ctx.DrawPath(f.x(ab.Left), f.yUp(ab.Bottom), canvas.Rectangle(model.PtToMm(ab.Width()), model.PtToMm(ab.Height())))
		ctx.SetDashes(0)
	}

	return c, nil
}
