package engine

import (
	"github.com/piwi3910/BagCut/internal/descriptor"
	"github.com/piwi3910/BagCut/internal/model"
)

// Options controls diecut generation.
type Options struct {
	Limit   model.MachineLimit `json:"limit"`
	Margins model.Margins      `json:"margins"` // Used for options missing from the descriptor
}

// DefaultOptions returns the factory machine limit and margins.
func DefaultOptions() Options {
	return Options{
		Limit:   model.DefaultMachineLimit(),
		Margins: model.DefaultMargins(),
	}
}

// OptionsFromConfig builds generation options from the application config.
func OptionsFromConfig(cfg model.AppConfig) Options {
	return Options{Limit: cfg.Machine, Margins: cfg.DefaultMargins}
}

// Result holds the complete output of one diecut generation.
type Result struct {
	Spec     model.BagSpec         `json:"spec"`
	Grid     Grid                  `json:"grid"`
	Limit    model.MachineLimit    `json:"limit"`
	Decision Decision              `json:"decision"`
	Variant  model.Variant         `json:"variant"`
	Commands []model.RenderCommand `json:"commands"`

	BoardWidth  float64 `json:"board_width"`  // pt, without bleed
	BoardHeight float64 `json:"board_height"` // pt, without bleed

	Warnings []string `json:"warnings"`
}

// Generate parses a descriptor and computes its diecut.
func Generate(desc string, opts Options) (Result, error) {
	spec, err := descriptor.Parse(desc, opts.Margins)
	if err != nil {
		return Result{}, err
	}
	return GenerateSpec(spec, opts.Limit), nil
}

// GenerateSpec computes the diecut of an already parsed bag.
func GenerateSpec(s model.BagSpec, limit model.MachineLimit) Result {
	g := ComputeGrid(s)
	decision := Select(s, limit)
	variant := decision.Variant()
	w, h := BoardSize(s, variant)

	r := Result{
		Spec:        s,
		Grid:        g,
		Limit:       limit,
		Decision:    decision,
		Variant:     variant,
		Commands:    Render(s, g, variant),
		BoardWidth:  w,
		BoardHeight: h,
		Warnings:    []string{},
	}

	if s.BottomClamped {
		r.Warnings = append(r.Warnings, "bottom margin reduced to half the depth minus 5mm")
	}
	if s.NegativeBottom() {
		r.Warnings = append(r.Warnings, "bottom margin is negative; the bag is too shallow for a bottom fold")
	}
	if decision.Unfit() {
		r.Warnings = append(r.Warnings, "the bag does not fit the machine even as a half diecut")
	}
	return r
}

// BoardSizeMM returns the drawn board size in millimetres, without bleed.
func (r Result) BoardSizeMM() (float64, float64) {
	return model.PtToMm(r.BoardWidth), model.PtToMm(r.BoardHeight)
}
