package descriptor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BagCut/internal/model"
)

func intPtr(v int) *int { return &v }

func TestParse_AllDefaults(t *testing.T) {
	spec, err := Parse("250x350x100", model.DefaultMargins())
	require.NoError(t, err)

	assert.Equal(t, "250x350x100", spec.Descriptor)
	assert.InDelta(t, 250.0, model.PtToMm(spec.Width), 1e-9)
	assert.InDelta(t, 350.0, model.PtToMm(spec.Height), 1e-9)
	assert.InDelta(t, 100.0, model.PtToMm(spec.Depth), 1e-9)
	assert.InDelta(t, 20.0, model.PtToMm(spec.GlueMargin), 1e-9)
	assert.InDelta(t, 40.0, model.PtToMm(spec.HandleMargin), 1e-9)
	assert.InDelta(t, 25.0, model.PtToMm(spec.BottomMargin), 1e-9)
	assert.InDelta(t, 3.0, model.PtToMm(spec.Bleed), 1e-9)
	assert.Equal(t, model.ForceNone, spec.Force)
	assert.False(t, spec.BottomClamped)
}

func TestParse_HandleOnly(t *testing.T) {
	spec, err := Parse("300-190-180_h60", model.DefaultMargins())
	require.NoError(t, err)

	assert.InDelta(t, 60.0, model.PtToMm(spec.HandleMargin), 1e-9)
	assert.InDelta(t, 20.0, model.PtToMm(spec.GlueMargin), 1e-9)
	assert.InDelta(t, 25.0, model.PtToMm(spec.BottomMargin), 1e-9)
	assert.InDelta(t, 3.0, model.PtToMm(spec.Bleed), 1e-9)
}

func TestParseFields_Samples(t *testing.T) {
	tests := []struct {
		in   string
		want Fields
	}{
		{
			in:   "250+350+100",
			want: Fields{Width: 250, Height: 350, Depth: 100},
		},
		{
			in:   "235x450x120+g15-h50",
			want: Fields{Width: 235, Height: 450, Depth: 120, Glue: intPtr(15), Handle: intPtr(50)},
		},
		{
			in: "170*250*150-b30_h55_g15_bleed5",
			want: Fields{Width: 170, Height: 250, Depth: 150,
				Glue: intPtr(15), Handle: intPtr(55), Bottom: intPtr(30), Bleed: intPtr(5)},
		},
		{
			in: "400/190/130_bleed0h25b10g17",
			want: Fields{Width: 400, Height: 190, Depth: 130,
				Glue: intPtr(17), Handle: intPtr(25), Bottom: intPtr(10), Bleed: intPtr(0)},
		},
		{
			in:   "800_750_650--forcefull",
			want: Fields{Width: 800, Height: 750, Depth: 650, Force: model.ForceFull},
		},
		{
			in:   "800_750_650--forcehalf",
			want: Fields{Width: 800, Height: 750, Depth: 650, Force: model.ForceHalf},
		},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFields(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFields_ForceFullWinsOverForceHalf(t *testing.T) {
	f, err := ParseFields("300x300x100 forcehalf forcefull")
	require.NoError(t, err)
	assert.Equal(t, model.ForceFull, f.Force)
}

func TestParseFields_OptionDigitLimits(t *testing.T) {
	f, err := ParseFields("300x300x100_g5-g1234-bleed123")
	require.NoError(t, err)

	require.NotNil(t, f.Glue)
	assert.Equal(t, 123, *f.Glue, "g5 is too short, g1234 contributes its first three digits")
	require.NotNil(t, f.Bleed)
	assert.Equal(t, 12, *f.Bleed)
	assert.Nil(t, f.Bottom, "the b of bleed is not followed by digits")
}

func TestParseFields_UnrecognisedTrailingIgnored(t *testing.T) {
	f, err := ParseFields("Shopper 250x350x100 kraft brown v2")
	require.NoError(t, err)
	assert.Equal(t, 250, f.Width)
	assert.Nil(t, f.Glue)
	assert.Nil(t, f.Handle)
	assert.Equal(t, model.ForceNone, f.Force)
}

func TestParseFields_SkipsShortLeadingNumbers(t *testing.T) {
	f, err := ParseFields("v2 250x350x100")
	require.NoError(t, err)
	assert.Equal(t, 250, f.Width)
	assert.Equal(t, 350, f.Height)
	assert.Equal(t, 100, f.Depth)
}

func TestParse_MissingDimensions(t *testing.T) {
	for _, in := range []string{"", "Untitled-1", "250x350", "250x350x1", "12345x350x100"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in, model.DefaultMargins())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingDimensions))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, MissingDimensions, perr.Kind)
			assert.Contains(t, err.Error(), Notation)
		})
	}
}

func TestParse_BottomClamp(t *testing.T) {
	spec, err := Parse("200x300x30", model.DefaultMargins())
	require.NoError(t, err)

	assert.True(t, spec.BottomClamped)
	assert.InDelta(t, 10.0, model.PtToMm(spec.BottomMargin), 1e-9)
}

func TestParse_CustomDefaults(t *testing.T) {
	defaults := model.Margins{Glue: 15, Handle: 50, Bottom: 30, Bleed: 2}
	spec, err := Parse("250x350x100_g25", defaults)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, model.PtToMm(spec.GlueMargin), 1e-9)
	assert.InDelta(t, 50.0, model.PtToMm(spec.HandleMargin), 1e-9)
	assert.InDelta(t, 2.0, model.PtToMm(spec.Bleed), 1e-9)
}

func TestFieldsStringRoundTrip(t *testing.T) {
	for _, in := range []string{
		"250x350x100",
		"170*250*150-b30_h55_g15_bleed5",
		"400/190/130_bleed0h25b10g07",
		"800_750_650--forcehalf",
	} {
		t.Run(in, func(t *testing.T) {
			f, err := ParseFields(in)
			require.NoError(t, err)

			back, err := ParseFields(f.String())
			require.NoError(t, err)
			assert.Equal(t, f, back)
		})
	}
}

func TestFieldsResolve(t *testing.T) {
	f, err := ParseFields("300-190-180_h60")
	require.NoError(t, err)

	r := f.Resolve(model.DefaultMargins())
	assert.Equal(t, "300x190x180_g20-h60-b25-bleed3", r.String())
	assert.Nil(t, f.Glue, "Resolve does not modify the receiver")
}

func TestFormat_ParsesBackToSameSpec(t *testing.T) {
	spec, err := Parse("235x450x120+g15-h50--forcefull", model.DefaultMargins())
	require.NoError(t, err)

	canonical := Format(spec)
	assert.Equal(t, "235x450x120_g15-h50-b25-bleed3--forcefull", canonical)

	back, err := Parse(canonical, model.DefaultMargins())
	require.NoError(t, err)
	back.Descriptor = spec.Descriptor
	assert.InDeltaMapValues(t, specValues(spec), specValues(back), 1e-9)
	assert.Equal(t, spec.Force, back.Force)
}

func specValues(s model.BagSpec) map[string]float64 {
	return map[string]float64{
		"width":  s.Width,
		"height": s.Height,
		"depth":  s.Depth,
		"glue":   s.GlueMargin,
		"handle": s.HandleMargin,
		"bottom": s.BottomMargin,
		"bleed":  s.Bleed,
	}
}
