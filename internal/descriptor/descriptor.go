// Package descriptor reads bag dimensions and options from a free-form
// artwork name such as "235x450x120+g15-h50".
package descriptor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/BagCut/internal/model"
)

// Notation is the descriptor syntax shown to users when parsing fails.
const Notation = "{WIDTH}x{HEIGHT}x{DEPTH}_g{GlueMargin}-h{HandleMargin}-b{BottomMargin}-bleed{BleedOffset}[--forcefull|--forcehalf]"

// Usage documents the descriptor format with examples.
const Usage = `Bag descriptor

Required: width, height and depth in millimetres, in this order, 2-4 digits each.
Optional: glue (g), handle (h) and bottom (b) margins, 2-3 digits each, and
bleed (bleed), 1-2 digits, in any order. Flags --forcefull and --forcehalf
force the diecut variant regardless of the machine size.

Notation: ` + Notation + `
Any non-digit characters separate the dimensions.

Samples:
  250+350+100                      default glue 20, handle 40, bottom 25, bleed 3
  300-190-180_h60                  one custom margin
  235x450x120+g15-h50              two custom margins
  170*250*150-b30_h55_g15_bleed5   all custom margins
  400/190/130_bleed0h25b10g17      no separators between options
  800_750_650--forcefull           full diecut even if it does not fit
`

// ErrMissingDimensions is wrapped by ParseError when the descriptor does not
// start with three dimensions.
var ErrMissingDimensions = errors.New("missing bag dimensions")

// ParseErrorKind classifies descriptor failures.
type ParseErrorKind int

const (
	MissingDimensions ParseErrorKind = iota
)

func (k ParseErrorKind) String() string {
	return "MissingDimensions"
}

// ParseError reports a descriptor that cannot be turned into a bag.
type ParseError struct {
	Kind  ParseErrorKind
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read width, height and depth from %q; use %s", e.Input, Notation)
}

func (e *ParseError) Unwrap() error {
	return ErrMissingDimensions
}

// Fields holds the raw millimetre values found in a descriptor. Optional
// margins are nil when the descriptor does not mention them.
type Fields struct {
	Width  int
	Height int
	Depth  int

	Glue   *int
	Handle *int
	Bottom *int
	Bleed  *int

	Force model.ForceMode
}

// option describes one optional "<prefix><digits>" token.
type option struct {
	prefix    string
	minDigits int
	maxDigits int
}

var (
	glueOption   = option{prefix: "g", minDigits: 2, maxDigits: 3}
	handleOption = option{prefix: "h", minDigits: 2, maxDigits: 3}
	bottomOption = option{prefix: "b", minDigits: 2, maxDigits: 3}
	bleedOption  = option{prefix: "bleed", minDigits: 1, maxDigits: 2}
)

// ParseFields extracts the dimensions and options from a descriptor.
func ParseFields(s string) (Fields, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return Fields{}, fmt.Errorf("failed to tokenize descriptor %q: %w", s, err)
	}

	dims, rest, ok := findDimensions(tokens)
	if !ok {
		return Fields{}, &ParseError{Kind: MissingDimensions, Input: s}
	}

	f := Fields{Width: dims[0], Height: dims[1], Depth: dims[2]}
	f.Glue = glueOption.find(rest)
	f.Handle = handleOption.find(rest)
	f.Bottom = bottomOption.find(rest)
	f.Bleed = bleedOption.find(rest)

	var trailing strings.Builder
	for _, t := range rest {
		trailing.WriteString(t.value)
	}
	switch {
	case strings.Contains(trailing.String(), "forcefull"):
		f.Force = model.ForceFull
	case strings.Contains(trailing.String(), "forcehalf"):
		f.Force = model.ForceHalf
	}

	return f, nil
}

// Parse reads a descriptor into a BagSpec, filling absent margins from
// defaults and applying the bottom margin clamp.
func Parse(s string, defaults model.Margins) (model.BagSpec, error) {
	f, err := ParseFields(s)
	if err != nil {
		return model.BagSpec{}, err
	}
	spec := f.Spec(defaults)
	spec.Descriptor = s
	return spec, nil
}

// Spec converts the fields to a BagSpec using defaults for absent margins.
func (f Fields) Spec(defaults model.Margins) model.BagSpec {
	m := f.Margins(defaults)
	return model.NewBagSpec(float64(f.Width), float64(f.Height), float64(f.Depth), m, f.Force)
}

// Margins returns the descriptor margins with defaults for absent ones.
func (f Fields) Margins(defaults model.Margins) model.Margins {
	m := defaults
	if f.Glue != nil {
		m.Glue = float64(*f.Glue)
	}
	if f.Handle != nil {
		m.Handle = float64(*f.Handle)
	}
	if f.Bottom != nil {
		m.Bottom = float64(*f.Bottom)
	}
	if f.Bleed != nil {
		m.Bleed = float64(*f.Bleed)
	}
	return m
}

// String renders the fields in canonical notation. Only the options present
// in f are written.
func (f Fields) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%dx%d", f.Width, f.Height, f.Depth)

	var opts []string
	if f.Glue != nil {
		opts = append(opts, fmt.Sprintf("g%02d", *f.Glue))
	}
	if f.Handle != nil {
		opts = append(opts, fmt.Sprintf("h%02d", *f.Handle))
	}
	if f.Bottom != nil {
		opts = append(opts, fmt.Sprintf("b%02d", *f.Bottom))
	}
	if f.Bleed != nil {
		opts = append(opts, fmt.Sprintf("bleed%d", *f.Bleed))
	}
	if len(opts) > 0 {
		b.WriteString("_")
		b.WriteString(strings.Join(opts, "-"))
	}

	switch f.Force {
	case model.ForceFull:
		b.WriteString("--forcefull")
	case model.ForceHalf:
		b.WriteString("--forcehalf")
	}
	return b.String()
}

// Resolve returns a copy of f with every absent margin set from defaults,
// rounded to whole millimetres.
func (f Fields) Resolve(defaults model.Margins) Fields {
	m := f.Margins(defaults)
	glue, handle := int(m.Glue+0.5), int(m.Handle+0.5)
	bottom, bleed := int(m.Bottom+0.5), int(m.Bleed+0.5)
	f.Glue, f.Handle, f.Bottom, f.Bleed = &glue, &handle, &bottom, &bleed
	return f
}

// findDimensions returns the first three consecutive digit runs of 2-4 digits
// and the tokens following the third one.
func findDimensions(tokens []token) ([3]int, []token, bool) {
	var digitIdx []int
	for i, t := range tokens {
		if t.isDigits() {
			digitIdx = append(digitIdx, i)
		}
	}

	for k := 0; k+2 < len(digitIdx); k++ {
		var dims [3]int
		valid := true
		for j := 0; j < 3; j++ {
			v, ok := dimension(tokens[digitIdx[k+j]].value)
			if !ok {
				valid = false
				break
			}
			dims[j] = v
		}
		if valid {
			return dims, tokens[digitIdx[k+2]+1:], true
		}
	}
	return [3]int{}, nil, false
}

func dimension(digits string) (int, bool) {
	if len(digits) < 2 || len(digits) > 4 {
		return 0, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return v, true
}

// find returns the value of the first letters+digits pair whose letters end
// with the option prefix and whose digit run is long enough. Longer runs
// contribute their leading maxDigits digits.
func (o option) find(tokens []token) *int {
	for i := 0; i+1 < len(tokens); i++ {
		letters, digits := tokens[i], tokens[i+1]
		if !letters.isLetters() || !digits.isDigits() {
			continue
		}
		if !strings.HasSuffix(letters.value, o.prefix) || len(digits.value) < o.minDigits {
			continue
		}
		d := digits.value
		if len(d) > o.maxDigits {
			d = d[:o.maxDigits]
		}
		v, err := strconv.Atoi(d)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// Format renders a spec in canonical notation with every margin written out.
// Measurements are rounded to whole millimetres.
func Format(s model.BagSpec) string {
	mm := func(pt float64) int { return int(math.Round(model.PtToMm(pt))) }
	glue, handle, bottom, bleed := mm(s.GlueMargin), mm(s.HandleMargin), mm(s.BottomMargin), mm(s.Bleed)
	return Fields{
		Width:  mm(s.Width),
		Height: mm(s.Height),
		Depth:  mm(s.Depth),
		Glue:   &glue,
		Handle: &handle,
		Bottom: &bottom,
		Bleed:  &bleed,
		Force:  s.Force,
	}.String()
}
