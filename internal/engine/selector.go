package engine

import (
	"fmt"

	"github.com/piwi3910/BagCut/internal/model"
)

// Decision is the outcome of the variant selector.
type Decision int

const (
	Undetermined    Decision = iota
	Full                     // Full diecut fits (or was forced)
	Half                     // Full does not fit (or half was forced)
	HalfWithWarning          // Not even the half diecut fits the machine
)

func (d Decision) String() string {
	switch d {
	case Full:
		return "Full"
	case Half:
		return "Half"
	case HalfWithWarning:
		return "HalfWithWarning"
	default:
		return "Undetermined"
	}
}

// Variant returns the diecut layout drawn for the decision.
func (d Decision) Variant() model.Variant {
	if d == Full {
		return model.VariantFull
	}
	return model.VariantHalf
}

// Unfit reports whether the decision requires the oversize warning.
func (d Decision) Unfit() bool {
	return d == HalfWithWarning
}

// Select chooses the diecut variant for a bag on the given machine.
// Forced modes skip the fit check entirely.
func Select(s model.BagSpec, limit model.MachineLimit) Decision {
	switch s.Force {
	case model.ForceFull:
		return Full
	case model.ForceHalf:
		return Half
	}

	if limit.Fits(PaddedBoardSize(s, model.VariantFull)) {
		return Full
	}
	if !limit.Fits(PaddedBoardSize(s, model.VariantHalf)) {
		return HalfWithWarning
	}
	return Half
}

// MarshalText encodes the decision by name.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a decision name.
func (d *Decision) UnmarshalText(text []byte) error {
	for _, c := range []Decision{Undetermined, Full, Half, HalfWithWarning} {
		if c.String() == string(text) {
			*d = c
			return nil
		}
	}
	return fmt.Errorf("unknown decision %q", text)
}
