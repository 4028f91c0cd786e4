package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// DefaultPreviewScale is the preview resolution in pixels per millimetre.
const DefaultPreviewScale = 1.0

// previewMargin is the blank border around the preview (mm).
const previewMargin = 5.0

// ExportPNG writes a line-only raster preview of the diecut.
func ExportPNG(path string, d Diecut, pxPerMM float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	if err := WritePNG(file, d, pxPerMM); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WritePNG encodes the preview to w.
func WritePNG(w io.Writer, d Diecut, pxPerMM float64) error {
	img, err := RasterizePreview(d, pxPerMM)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// RasterizePreview draws the cut lines on a white background at the given
// resolution. Labels are left out.
func RasterizePreview(d Diecut, pxPerMM float64) (*image.RGBA, error) {
	if pxPerMM <= 0 {
		pxPerMM = DefaultPreviewScale
	}

	data, err := previewSVG(d)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read preview SVG: %w", err)
	}

	width := int(math.Ceil(icon.ViewBox.W * pxPerMM))
	height := int(math.Ceil(icon.ViewBox.H * pxPerMM))
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	icon.Draw(raster, 1.0)
	return img, nil
}

// previewSVG builds a minimal SVG of the cut lines, in millimetres with the
// origin at the top-left corner.
func previewSVG(d Diecut) ([]byte, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	f := frame{ref: d.Drawing.Bounds, margin: previewMargin}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f">`, f.width(), f.height())
	buf.WriteString(`<g stroke="#000000" stroke-width="0.5" fill="none">`)
	for _, l := range d.Drawing.Lines() {
		fmt.Fprintf(&buf, `<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f"/>`,
			f.x(l.Start.X), f.yDown(l.Start.Y), f.x(l.End.X), f.yDown(l.End.Y))
	}
	buf.WriteString(`</g></svg>`)
	return buf.Bytes(), nil
}
