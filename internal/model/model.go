package model

import (
	"fmt"
	"math"
)

// ForceMode overrides the automatic full/half diecut choice.
type ForceMode int

const (
	ForceNone ForceMode = iota // Let the selector decide
	ForceFull                  // Always draw the full diecut
	ForceHalf                  // Always draw the half diecut
)

func (f ForceMode) String() string {
	switch f {
	case ForceFull:
		return "forcefull"
	case ForceHalf:
		return "forcehalf"
	default:
		return "none"
	}
}

// MarshalText encodes the force mode by name.
func (f ForceMode) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a force mode name.
func (f *ForceMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "forcefull":
		*f = ForceFull
	case "forcehalf":
		*f = ForceHalf
	case "none", "":
		*f = ForceNone
	default:
		return fmt.Errorf("unknown force mode %q", text)
	}
	return nil
}

// Point2D represents a 2D coordinate in points. Y grows upwards, as in the
// host document the diecut is drawn into.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Margins holds the optional bag margins in millimetres.
type Margins struct {
	Glue   float64 `json:"glue"`
	Handle float64 `json:"handle"`
	Bottom float64 `json:"bottom"`
	Bleed  float64 `json:"bleed"`
}

// DefaultMargins returns the margins used when a descriptor omits them.
func DefaultMargins() Margins {
	return Margins{
		Glue:   20,
		Handle: 40,
		Bottom: 25,
		Bleed:  3,
	}
}

// bottomClampOffset is subtracted from half the depth when the bottom margin
// is too large for the bag depth.
const bottomClampOffset = 5.0 // mm

// BagSpec is the validated set of bag measurements, all in points.
// It is built once per descriptor and never mutated afterwards.
type BagSpec struct {
	Descriptor   string    `json:"descriptor"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Depth        float64   `json:"depth"`
	GlueMargin   float64   `json:"glue_margin"`
	HandleMargin float64   `json:"handle_margin"`
	BottomMargin float64   `json:"bottom_margin"`
	Bleed        float64   `json:"bleed"`
	Force        ForceMode `json:"force"`

	BottomClamped bool `json:"bottom_clamped"` // BottomMargin was reduced to depth/2 - 5mm
}

// NewBagSpec converts millimetre inputs into a BagSpec and applies the
// bottom margin clamp.
func NewBagSpec(width, height, depth float64, m Margins, force ForceMode) BagSpec {
	s := BagSpec{
		Width:        MmToPt(width),
		Height:       MmToPt(height),
		Depth:        MmToPt(depth),
		GlueMargin:   MmToPt(m.Glue),
		HandleMargin: MmToPt(m.Handle),
		BottomMargin: MmToPt(m.Bottom),
		Bleed:        MmToPt(m.Bleed),
		Force:        force,
	}
	if s.BottomMargin > s.Depth/2 {
		s.BottomMargin = s.Depth/2 - MmToPt(bottomClampOffset)
		s.BottomClamped = true
	}
	return s
}

// NegativeBottom reports whether the clamp produced a negative bottom margin,
// which happens for bags shallower than 10mm.
func (s BagSpec) NegativeBottom() bool {
	return s.BottomMargin < 0
}

// MarginsMM returns the spec margins converted back to millimetres.
func (s BagSpec) MarginsMM() Margins {
	return Margins{
		Glue:   PtToMm(s.GlueMargin),
		Handle: PtToMm(s.HandleMargin),
		Bottom: PtToMm(s.BottomMargin),
		Bleed:  PtToMm(s.Bleed),
	}
}

// MachineLimit is the usable bed of a cutting machine in millimetres.
type MachineLimit struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultMachineLimit returns the bed size of the default cutting machine.
func DefaultMachineLimit() MachineLimit {
	return MachineLimit{Name: "Default", Width: 710, Height: 506}
}

// Valid reports whether both bed dimensions are positive.
func (m MachineLimit) Valid() bool {
	return m.Width > 0 && m.Height > 0
}

// WidthPt returns the bed width in points.
func (m MachineLimit) WidthPt() float64 { return MmToPt(m.Width) }

// HeightPt returns the bed height in points.
func (m MachineLimit) HeightPt() float64 { return MmToPt(m.Height) }

// Fits reports whether a w x h box (points) fits strictly inside the bed,
// either as given or rotated by 90 degrees.
func (m MachineLimit) Fits(w, h float64) bool {
	mw, mh := m.WidthPt(), m.HeightPt()
	return (w < mw && h < mh) || (h < mw && w < mh)
}

// Variant identifies which diecut layout is drawn.
type Variant int

const (
	VariantFull Variant = iota // Both halves of the bag
	VariantHalf                // One half only
)

func (v Variant) String() string {
	if v == VariantHalf {
		return "half"
	}
	return "full"
}

// MarshalText encodes the variant by name.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a variant name.
func (v *Variant) UnmarshalText(text []byte) error {
	switch string(text) {
	case "full":
		*v = VariantFull
	case "half":
		*v = VariantHalf
	default:
		return fmt.Errorf("unknown variant %q", text)
	}
	return nil
}

// CommandKind tags a RenderCommand.
type CommandKind int

const (
	CommandLine  CommandKind = iota // Straight cut/crease line
	CommandLabel                    // Dimension or warning text
)

func (k CommandKind) String() string {
	if k == CommandLabel {
		return "label"
	}
	return "line"
}

// MarshalText encodes the command kind by name.
func (k CommandKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a command kind name.
func (k *CommandKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "line":
		*k = CommandLine
	case "label":
		*k = CommandLabel
	default:
		return fmt.Errorf("unknown command kind %q", text)
	}
	return nil
}

// RenderCommand is one abstract drawing instruction for a host surface.
type RenderCommand struct {
	Kind     CommandKind `json:"kind"`
	Start    Point2D     `json:"start"`
	End      Point2D     `json:"end"`
	Text     string      `json:"text,omitempty"`
	Position Point2D     `json:"position"`
	Rotation float64     `json:"rotation,omitempty"` // degrees, counter-clockwise
}

// Line builds a line command.
func Line(start, end Point2D) RenderCommand {
	return RenderCommand{Kind: CommandLine, Start: start, End: end}
}

// Label builds a label command. Position is the top-left corner of the text frame.
func Label(text string, pos Point2D, rotation float64) RenderCommand {
	return RenderCommand{Kind: CommandLabel, Text: text, Position: pos, Rotation: rotation}
}

// Rect is a rectangle in document coordinates using the host's
// [left, top, right, bottom] convention, with Top > Bottom.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// EmptyRect returns a rectangle that any Extend call replaces.
func EmptyRect() Rect {
	return Rect{
		Left:   math.Inf(1),
		Top:    math.Inf(-1),
		Right:  math.Inf(-1),
		Bottom: math.Inf(1),
	}
}

// IsEmpty reports whether nothing has been added to the rectangle.
func (r Rect) IsEmpty() bool {
	return r.Left > r.Right || r.Bottom > r.Top
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Extend grows the rectangle to include p.
func (r Rect) Extend(p Point2D) Rect {
	if p.X < r.Left {
		r.Left = p.X
	}
	if p.X > r.Right {
		r.Right = p.X
	}
	if p.Y > r.Top {
		r.Top = p.Y
	}
	if p.Y < r.Bottom {
		r.Bottom = p.Y
	}
	return r
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Left:   r.Left + d,
		Top:    r.Top - d,
		Right:  r.Right - d,
		Bottom: r.Bottom + d,
	}
}

// Drawing is everything a host surface received for one bag: the commands in
// drawing order, the visible bounds they occupy and the final artboard.
type Drawing struct {
	Commands []RenderCommand `json:"commands"`
	Bounds   Rect            `json:"bounds"`
	Artboard Rect            `json:"artboard"`
}

// Lines returns only the line commands of the drawing.
func (d Drawing) Lines() []RenderCommand {
	var lines []RenderCommand
	for _, c := range d.Commands {
		if c.Kind == CommandLine {
			lines = append(lines, c)
		}
	}
	return lines
}

// Labels returns only the label commands of the drawing.
func (d Drawing) Labels() []RenderCommand {
	var labels []RenderCommand
	for _, c := range d.Commands {
		if c.Kind == CommandLabel {
			labels = append(labels, c)
		}
	}
	return labels
}
