package surface

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/piwi3910/BagCut/internal/model"
)

// Approximate text metrics, as fractions of the font size.
const (
	GlyphAdvance = 0.5
	LineLeading  = 1.2
	Ascent       = 0.8
)

// DefaultFontSize is the label size used by the drawing host, in points.
const DefaultFontSize = 26.0

// TextLine is one line of a label, positioned at its baseline origin.
type TextLine struct {
	Text   string
	Origin model.Point2D
}

// MeasureText estimates the unrotated frame size of a possibly multi-line
// label.
func MeasureText(text string, size float64) (float64, float64) {
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return float64(longest) * GlyphAdvance * size, float64(len(lines)) * LineLeading * size
}

// LabelBox returns the bounding rectangle of a label. The frame is rotated
// counter-clockwise and then placed so that the top-left corner of the
// rotated frame sits at pos.
func LabelBox(text string, pos model.Point2D, rotation, size float64) model.Rect {
	w, h := MeasureText(text, size)
	anchor := frameAnchor(w, h, pos, rotation)
	r := model.EmptyRect()
	for _, c := range frameCorners(w, h) {
		r = r.Extend(rotate(c, anchor, rotation))
	}
	return r
}

// LayoutLines splits a label into lines and returns the baseline origin of
// each, in document coordinates, using the same placement as LabelBox.
func LayoutLines(text string, pos model.Point2D, rotation, size float64) []TextLine {
	w, h := MeasureText(text, size)
	anchor := frameAnchor(w, h, pos, rotation)
	lines := strings.Split(text, "\n")
	out := make([]TextLine, 0, len(lines))
	for i, l := range lines {
		local := model.Point2D{X: 0, Y: -(Ascent*size + float64(i)*LineLeading*size)}
		out = append(out, TextLine{Text: l, Origin: rotate(local, anchor, rotation)})
	}
	return out
}

// frameCorners lists the corners of an unrotated w x h frame whose top-left
// corner is the origin.
func frameCorners(w, h float64) []model.Point2D {
	return []model.Point2D{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: -h}, {X: 0, Y: -h}}
}

// frameAnchor returns the document position of the frame origin such that
// the rotated frame's bounding box has its top-left corner at pos.
func frameAnchor(w, h float64, pos model.Point2D, rotation float64) model.Point2D {
	if rotation == 0 {
		return pos
	}
	box := model.EmptyRect()
	for _, c := range frameCorners(w, h) {
		box = box.Extend(rotate(c, model.Point2D{}, rotation))
	}
	return model.Point2D{X: pos.X - box.Left, Y: pos.Y - box.Top}
}

// rotate maps a point in frame coordinates to the document, rotating by deg
// counter-clockwise about the frame origin at pos.
func rotate(p, pos model.Point2D, deg float64) model.Point2D {
	if deg == 0 {
		return model.Point2D{X: pos.X + p.X, Y: pos.Y + p.Y}
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return model.Point2D{
		X: pos.X + p.X*cos - p.Y*sin,
		Y: pos.Y + p.X*sin + p.Y*cos,
	}
}
