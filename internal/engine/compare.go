package engine

import (
	"fmt"

	"github.com/piwi3910/BagCut/internal/model"
)

// ComparisonScenario defines a named bag/machine combination to compare.
type ComparisonScenario struct {
	Name  string             `json:"name"`
	Spec  model.BagSpec      `json:"spec"`
	Limit model.MachineLimit `json:"limit"`
}

// ComparisonResult holds the selector outcome and padded sizes for a single
// scenario. Sizes are in millimetres and include the bleed.
type ComparisonResult struct {
	Scenario   ComparisonScenario `json:"scenario"`
	Decision   Decision           `json:"decision"`
	FullWidth  float64            `json:"full_width"`
	FullHeight float64            `json:"full_height"`
	HalfWidth  float64            `json:"half_width"`
	HalfHeight float64            `json:"half_height"`
	FullFits   bool               `json:"full_fits"`
	HalfFits   bool               `json:"half_fits"`
}

// CompareScenarios runs the variant selector for each scenario and returns
// the results in scenario order.
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, sc := range scenarios {
		fw, fh := PaddedBoardSize(sc.Spec, model.VariantFull)
		hw, hh := PaddedBoardSize(sc.Spec, model.VariantHalf)

		results = append(results, ComparisonResult{
			Scenario:   sc,
			Decision:   Select(sc.Spec, sc.Limit),
			FullWidth:  model.PtToMm(fw),
			FullHeight: model.PtToMm(fh),
			HalfWidth:  model.PtToMm(hw),
			HalfHeight: model.PtToMm(hh),
			FullFits:   sc.Limit.Fits(fw, fh),
			HalfFits:   sc.Limit.Fits(hw, hh),
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives for a bag: the
// current settings, the bag without bleed, automatic selection when a force
// flag is set, and every alternative machine from the config.
func BuildDefaultScenarios(s model.BagSpec, cfg model.AppConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:  "Current Settings",
			Spec:  s,
			Limit: cfg.Machine,
		},
	}

	// Scenario: No bleed
	if s.Bleed > 0 {
		noBleed := s
		noBleed.Bleed = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:  "No Bleed",
			Spec:  noBleed,
			Limit: cfg.Machine,
		})
	}

	// Scenario: Let the selector decide
	if s.Force != model.ForceNone {
		auto := s
		auto.Force = model.ForceNone
		scenarios = append(scenarios, ComparisonScenario{
			Name:  "Automatic Selection",
			Spec:  auto,
			Limit: cfg.Machine,
		})
	}

	for _, m := range cfg.Machines {
		scenarios = append(scenarios, ComparisonScenario{
			Name:  fmt.Sprintf("%s (%.0f x %.0f mm)", m.Name, m.Width, m.Height),
			Spec:  s,
			Limit: m,
		})
	}

	return scenarios
}
