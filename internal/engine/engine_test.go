package engine

import (
	"sort"
	"strconv"
	"testing"

	"github.com/piwi3910/BagCut/internal/descriptor"
	"github.com/piwi3910/BagCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, desc string) model.BagSpec {
	t.Helper()
	s, err := descriptor.Parse(desc, model.DefaultMargins())
	require.NoError(t, err)
	return s
}

func TestComputeGrid_StationsAreOrdered(t *testing.T) {
	for _, desc := range []string{"250x350x100", "170*250*150-b30_h55_g15_bleed5", "800_750_650", "50x50x30"} {
		t.Run(desc, func(t *testing.T) {
			g := ComputeGrid(mustSpec(t, desc))
			assert.True(t, sort.Float64sAreSorted(g.Ph.Ordered()), "horizontal stations %v", g.Ph.Ordered())
			assert.True(t, sort.Float64sAreSorted(g.Pv.Ordered()), "vertical stations %v", g.Pv.Ordered())
		})
	}
}

func TestComputeGrid_Values(t *testing.T) {
	g := ComputeGrid(mustSpec(t, "250x350x100"))

	mm := func(v float64) float64 { return model.PtToMm(v) }
	assert.InDelta(t, 20.0, mm(g.Ph.A), 1e-9)
	assert.InDelta(t, 270.0, mm(g.Ph.B), 1e-9)
	assert.InDelta(t, 320.0, mm(g.Ph.C), 1e-9)
	assert.InDelta(t, 370.0, mm(g.Ph.D), 1e-9)
	assert.InDelta(t, 620.0, mm(g.Ph.E), 1e-9)
	assert.InDelta(t, 670.0, mm(g.Ph.F), 1e-9)
	assert.InDelta(t, 720.0, mm(g.Ph.H), 1e-9)

	assert.InDelta(t, 75.0, mm(g.Pv.A), 1e-9)
	assert.InDelta(t, 125.0, mm(g.Pv.B), 1e-9)
	assert.InDelta(t, 425.0, mm(g.Pv.C), 1e-9)
	assert.InDelta(t, 465.0, mm(g.Pv.D), 1e-9)
}

func TestBoardSize(t *testing.T) {
	s := mustSpec(t, "250x350x100")

	w, h := BoardSize(s, model.VariantHalf)
	assert.InDelta(t, 370.0, model.PtToMm(w), 1e-9)
	assert.InDelta(t, 465.0, model.PtToMm(h), 1e-9)

	w, h = BoardSize(s, model.VariantFull)
	assert.InDelta(t, 720.0, model.PtToMm(w), 1e-9)
	assert.InDelta(t, 465.0, model.PtToMm(h), 1e-9)

	pw, ph := PaddedBoardSize(s, model.VariantFull)
	assert.InDelta(t, 726.0, model.PtToMm(pw), 1e-9)
	assert.InDelta(t, 471.0, model.PtToMm(ph), 1e-9)
}

func TestSelect_Scenarios(t *testing.T) {
	limit := model.DefaultMachineLimit()

	tests := []struct {
		desc string
		want Decision
	}{
		// 726mm padded full width does not fit, the 376 x 471 half does
		{"250x350x100", Half},
		{"250x350x50", Full},
		{"800_750_650--forcefull", Full},
		{"50x50x30--forcehalf", Half},
		{"300-190-180_h60", Half},
		{"900x900x400", HalfWithWarning},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(mustSpec(t, tt.desc), limit))
		})
	}
}

func TestSelect_Idempotent(t *testing.T) {
	s := mustSpec(t, "300-190-180_h60")
	limit := model.DefaultMachineLimit()
	assert.Equal(t, Select(s, limit), Select(s, limit))
}

func TestSelect_StrictBoundary(t *testing.T) {
	limit := model.DefaultMachineLimit()

	// Full board exactly as wide as the bed
	s := model.BagSpec{GlueMargin: limit.WidthPt(), Height: 10}
	assert.Equal(t, HalfWithWarning, Select(s, limit), "equal size must not fit")

	s.GlueMargin = limit.WidthPt() - 0.01
	assert.Equal(t, Full, Select(s, limit))
}

func TestSelect_RotatedBed(t *testing.T) {
	s := mustSpec(t, "250x350x50")
	rotated := model.MachineLimit{Name: "Portrait", Width: 506, Height: 710}
	assert.Equal(t, Full, Select(s, rotated))
}

func TestSelect_ForceSkipsFitCheck(t *testing.T) {
	tiny := model.MachineLimit{Width: 1, Height: 1}
	assert.Equal(t, Full, Select(mustSpec(t, "800_750_650--forcefull"), tiny))
	assert.Equal(t, Half, Select(mustSpec(t, "800_750_650--forcehalf"), tiny))
}

func TestRenderHalf_Commands(t *testing.T) {
	s := mustSpec(t, "250x350x100")
	g := ComputeGrid(s)
	cmds := RenderHalf(s, g)

	d := model.Drawing{Commands: cmds}
	require.Len(t, d.Lines(), 9)
	require.Len(t, d.Labels(), 7)

	_, bH := BoardSize(s, model.VariantHalf)
	first := cmds[0]
	assert.Equal(t, model.CommandLine, first.Kind)
	assert.Equal(t, model.Point2D{X: g.Ph.A, Y: -s.Bleed}, first.Start)
	assert.Equal(t, model.Point2D{X: g.Ph.A, Y: bH + s.Bleed}, first.End)

	// One-sided bottom line stops at the gusset fold
	bottom := cmds[5]
	assert.Equal(t, model.Point2D{X: -s.Bleed, Y: g.Pv.B}, bottom.Start)
	assert.Equal(t, model.Point2D{X: g.Ph.C, Y: g.Pv.B}, bottom.End)

	glueFlap := cmds[8]
	assert.Equal(t, model.Point2D{X: g.Ph.A + g.Pv.A + s.Bleed, Y: -s.Bleed}, glueFlap.Start)
	assert.Equal(t, model.Point2D{X: -s.Bleed, Y: g.Pv.A + s.GlueMargin + s.Bleed}, glueFlap.End)

	labels := d.Labels()
	wantMM := []float64{20, 250, 50, 50, 75, 350, 40}
	for i, l := range labels {
		v, err := strconv.ParseFloat(l.Text, 64)
		require.NoError(t, err)
		assert.InDelta(t, wantMM[i], v, 1e-9, "label %d", i)
	}
	for _, l := range labels[:4] {
		assert.Zero(t, l.Rotation)
		assert.Equal(t, bH-labelDropFromTop, l.Position.Y)
	}
	for _, l := range labels[4:] {
		assert.Equal(t, 90.0, l.Rotation)
		assert.Equal(t, sideLabelX, l.Position.X)
	}
	assert.Equal(t, (g.Ph.A+g.Ph.B)/2-labelShiftLeft, labels[1].Position.X)
}

func TestRenderFull_Commands(t *testing.T) {
	s := mustSpec(t, "250x350x50")
	g := ComputeGrid(s)
	cmds := RenderFull(s, g)

	d := model.Drawing{Commands: cmds}
	require.Len(t, d.Lines(), 14)
	require.Len(t, d.Labels(), 10)

	bottom := cmds[8]
	assert.Equal(t, model.Point2D{X: g.Ph.C, Y: g.Pv.B}, bottom.Start)
	assert.Equal(t, model.Point2D{X: g.Ph.F, Y: g.Pv.B}, bottom.End)

	for _, l := range d.Lines()[9:13] {
		assert.Equal(t, g.Pv.B, l.Start.Y, "gusset diagonals start on the bottom crease")
	}
}

func TestRender_DispatchesOnVariant(t *testing.T) {
	s := mustSpec(t, "250x350x100")
	g := ComputeGrid(s)
	assert.Equal(t, RenderHalf(s, g), Render(s, g, model.VariantHalf))
	assert.Equal(t, RenderFull(s, g), Render(s, g, model.VariantFull))
}

func TestWarningLabels(t *testing.T) {
	bounds := model.Rect{Left: 0, Top: model.MmToPt(600), Right: model.MmToPt(1000), Bottom: 0}
	labels := WarningLabels(bounds, model.DefaultMachineLimit())

	require.Len(t, labels, 2)
	assert.Equal(t, UnfitAdvice, labels[0].Text)
	assert.Equal(t, "\nCurrent size: 1000 x 600 mm\nMax size: 710 x 506 mm", labels[1].Text)
	assert.Equal(t, model.Point2D{X: bounds.Right / 2, Y: bounds.Top / 1.8}, labels[0].Position)
	assert.Equal(t, model.Point2D{X: bounds.Right / 2, Y: bounds.Top / 2.2}, labels[1].Position)
}

func TestGenerate_ScenarioC(t *testing.T) {
	r, err := Generate("300-190-180_h60", DefaultOptions())
	require.NoError(t, err)

	m := r.Spec.MarginsMM()
	assert.InDelta(t, 60.0, m.Handle, 1e-9)
	assert.InDelta(t, 20.0, m.Glue, 1e-9)
	assert.InDelta(t, 25.0, m.Bottom, 1e-9)
	assert.InDelta(t, 3.0, m.Bleed, 1e-9)
	assert.Equal(t, model.VariantHalf, r.Variant)
	assert.Empty(t, r.Warnings)
}

func TestGenerate_ClampWarning(t *testing.T) {
	r, err := Generate("250x350x30", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, r.Spec.BottomClamped)
	assert.Len(t, r.Warnings, 1)

	r, err = Generate("250x350x08", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, r.Spec.NegativeBottom())
	assert.Len(t, r.Warnings, 2)
}

func TestGenerate_ParseError(t *testing.T) {
	_, err := Generate("no dimensions here", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, descriptor.ErrMissingDimensions)
}

// fakeDocument records primitives and tracks bounds from line end points
// and label anchors.
type fakeDocument struct {
	lines    int
	labels   []string
	bounds   model.Rect
	artboard model.Rect
}

func newFakeDocument() *fakeDocument { return &fakeDocument{bounds: model.EmptyRect()} }

func (f *fakeDocument) DrawLine(a, b model.Point2D) {
	f.lines++
	f.bounds = f.bounds.Extend(a).Extend(b)
}

func (f *fakeDocument) DrawLabel(text string, pos model.Point2D, _ float64) {
	f.labels = append(f.labels, text)
	f.bounds = f.bounds.Extend(pos)
}

func (f *fakeDocument) VisibleBounds() model.Rect     { return f.bounds }
func (f *fakeDocument) SetArtboardRect(r model.Rect) { f.artboard = r }

func TestDraw_ScenarioD(t *testing.T) {
	r, err := Generate("900x900x400", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, HalfWithWarning, r.Decision)

	doc := newFakeDocument()
	Draw(r, doc, doc)

	assert.Equal(t, 9, doc.lines)
	require.Len(t, doc.labels, 9)
	assert.Equal(t, UnfitAdvice, doc.labels[7])
	assert.Contains(t, doc.labels[8], "Max size: 710 x 506 mm")
	assert.Equal(t, doc.bounds.Inset(r.Spec.Bleed), doc.artboard)
}

func TestDraw_NoWarningWhenFits(t *testing.T) {
	r, err := Generate("250x350x50", DefaultOptions())
	require.NoError(t, err)

	doc := newFakeDocument()
	Draw(r, doc, doc)

	assert.Equal(t, 14, doc.lines)
	assert.Len(t, doc.labels, 10)
	assert.NotContains(t, doc.labels, UnfitAdvice)
}

func TestCompareScenarios(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.Machines = []model.MachineLimit{{Name: "Large", Width: 1000, Height: 700}}

	s := mustSpec(t, "250x350x100--forcehalf")
	scenarios := BuildDefaultScenarios(s, cfg)
	require.Len(t, scenarios, 4)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, "No Bleed", scenarios[1].Name)
	assert.Equal(t, "Automatic Selection", scenarios[2].Name)
	assert.Equal(t, "Large (1000 x 700 mm)", scenarios[3].Name)

	results := CompareScenarios(scenarios)
	require.Len(t, results, 4)

	assert.Equal(t, Half, results[0].Decision)
	assert.False(t, results[0].FullFits)
	assert.True(t, results[0].HalfFits)
	assert.InDelta(t, 726.0, results[0].FullWidth, 1e-9)

	// 720mm without bleed is still wider than the bed
	assert.InDelta(t, 720.0, results[1].FullWidth, 1e-9)
	assert.False(t, results[1].FullFits)

	assert.Equal(t, Half, results[2].Decision)

	assert.True(t, results[3].FullFits)
}
