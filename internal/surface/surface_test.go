package surface

import (
	"testing"

	"github.com/piwi3910/BagCut/internal/engine"
	"github.com/piwi3910/BagCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureText(t *testing.T) {
	w, h := MeasureText("120", 10)
	assert.InDelta(t, 15.0, w, 1e-9)
	assert.InDelta(t, 12.0, h, 1e-9)

	w, h = MeasureText("a\nlonger", 10)
	assert.InDelta(t, 30.0, w, 1e-9)
	assert.InDelta(t, 24.0, h, 1e-9)
}

func TestLabelBox_Rotated(t *testing.T) {
	pos := model.Point2D{X: 10, Y: 100}

	flat := LabelBox("1234", pos, 0, 10)
	assert.InDelta(t, 10.0, flat.Left, 1e-9)
	assert.InDelta(t, 30.0, flat.Right, 1e-9)
	assert.InDelta(t, 100.0, flat.Top, 1e-9)
	assert.InDelta(t, 88.0, flat.Bottom, 1e-9)

	// Rotating 90 degrees swaps the axes and the frame hangs below pos
	up := LabelBox("1234", pos, 90, 10)
	assert.InDelta(t, 10.0, up.Left, 1e-9)
	assert.InDelta(t, 22.0, up.Right, 1e-9)
	assert.InDelta(t, 100.0, up.Top, 1e-9)
	assert.InDelta(t, 80.0, up.Bottom, 1e-9)
}

func TestLabelBox_RotatedTopLeftAtPosition(t *testing.T) {
	pos := model.Point2D{X: 10, Y: 100}
	for _, rot := range []float64{90, 180, 270, -90} {
		box := LabelBox("55.00000000000001", pos, rot, 26)
		assert.InDelta(t, pos.X, box.Left, 1e-9, "rotation %v", rot)
		assert.InDelta(t, pos.Y, box.Top, 1e-9, "rotation %v", rot)
	}
}

func TestLayoutLines_RotatedInsideLabelBox(t *testing.T) {
	pos := model.Point2D{X: 10, Y: 100}
	box := LabelBox("Current\nsize", pos, 90, 10)
	lines := LayoutLines("Current\nsize", pos, 90, 10)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.GreaterOrEqual(t, l.Origin.X, box.Left)
		assert.LessOrEqual(t, l.Origin.X, box.Right)
		assert.GreaterOrEqual(t, l.Origin.Y, box.Bottom)
		assert.LessOrEqual(t, l.Origin.Y, box.Top)
	}
	// Rotated text runs upwards from the bottom of the frame
	assert.InDelta(t, box.Bottom, lines[0].Origin.Y, 1e-9)
	assert.InDelta(t, 18.0, lines[0].Origin.X, 1e-9)
}

func TestRecorder_SideLabelsHangBelowAnchor(t *testing.T) {
	res, err := engine.Generate("250x350x60", engine.DefaultOptions())
	require.NoError(t, err)

	d := Record(res, DefaultFontSize)
	for _, l := range d.Labels() {
		if l.Rotation != 90 {
			continue
		}
		box := LabelBox(l.Text, l.Position, l.Rotation, DefaultFontSize)
		assert.InDelta(t, l.Position.Y, box.Top, 1e-9)
		assert.GreaterOrEqual(t, box.Bottom, d.Bounds.Bottom)
	}
}

func TestLayoutLines(t *testing.T) {
	lines := LayoutLines("one\ntwo", model.Point2D{X: 0, Y: 0}, 0, 10)
	require.Len(t, lines, 2)
	assert.Equal(t, "one", lines[0].Text)
	assert.InDelta(t, -8.0, lines[0].Origin.Y, 1e-9)
	assert.InDelta(t, -20.0, lines[1].Origin.Y, 1e-9)
}

func TestRecorder_BoundsIncludeEveryLineEnd(t *testing.T) {
	res, err := engine.Generate("250x350x100", engine.DefaultOptions())
	require.NoError(t, err)

	d := Record(res, 0)
	require.NotEmpty(t, d.Lines())
	for _, l := range d.Lines() {
		for _, p := range []model.Point2D{l.Start, l.End} {
			assert.GreaterOrEqual(t, p.X, d.Bounds.Left)
			assert.LessOrEqual(t, p.X, d.Bounds.Right)
			assert.GreaterOrEqual(t, p.Y, d.Bounds.Bottom)
			assert.LessOrEqual(t, p.Y, d.Bounds.Top)
		}
	}
}

func TestRecorder_ArtboardIsBoundsInsetByBleed(t *testing.T) {
	res, err := engine.Generate("250x350x50_bleed5", engine.DefaultOptions())
	require.NoError(t, err)

	d := Record(res, DefaultFontSize)
	assert.Equal(t, d.Bounds.Inset(res.Spec.Bleed), d.Artboard)
	assert.InDelta(t, d.Bounds.Left+model.MmToPt(5), d.Artboard.Left, 1e-9)
}

func TestRecorder_WarningLabelsRecorded(t *testing.T) {
	res, err := engine.Generate("900x900x400", engine.DefaultOptions())
	require.NoError(t, err)

	d := Record(res, DefaultFontSize)
	labels := d.Labels()
	require.Len(t, labels, 9)
	assert.Equal(t, engine.UnfitAdvice, labels[7].Text)
	assert.Contains(t, labels[8].Text, "Current size:")
}

func TestRecorder_DrawingIsACopy(t *testing.T) {
	rec := NewRecorder(12)
	rec.DrawLine(model.Point2D{}, model.Point2D{X: 1, Y: 1})

	d := rec.Drawing()
	d.Commands[0].Start.X = 99
	assert.Zero(t, rec.Drawing().Commands[0].Start.X)
	assert.Equal(t, 12.0, rec.FontSize())
}
