package model

// SpotColor names a spot ink with its CMYK alternate (0-100 per channel).
type SpotColor struct {
	Name    string  `json:"name"`
	Cyan    float64 `json:"cyan"`
	Magenta float64 `json:"magenta"`
	Yellow  float64 `json:"yellow"`
	Black   float64 `json:"black"`
}

// Style configures how exporters paint the diecut.
type Style struct {
	LabelFontSize float64   `json:"label_font_size"` // pt
	LineWidth     float64   `json:"line_width"`      // mm
	LineSpot      SpotColor `json:"line_spot"`       // Cut/crease lines
	LabelSpot     SpotColor `json:"label_spot"`      // Dimension and warning text
}

func DefaultStyle() Style {
	return Style{
		LabelFontSize: 26,
		LineWidth:     0.3,
		LineSpot:      SpotColor{Name: "Big", Cyan: 90, Yellow: 80},
		LabelSpot:     SpotColor{Name: "ProofColor", Cyan: 100, Yellow: 100},
	}
}

// maxRecentDescriptors bounds AppConfig.RecentDescriptors.
const maxRecentDescriptors = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	Machine  MachineLimit   `json:"machine"`  // Bed used for the full/half decision
	Machines []MachineLimit `json:"machines"` // Alternative beds offered by the comparison report

	DefaultMargins Margins        `json:"default_margins"`
	Style          Style          `json:"style"`
	Cutter         CutterSettings `json:"cutter"`

	RecentDescriptors []string `json:"recent_descriptors"`
}

// DefaultAppConfig returns an AppConfig populated with the factory defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Machine:           DefaultMachineLimit(),
		Machines:          []MachineLimit{},
		DefaultMargins:    DefaultMargins(),
		Style:             DefaultStyle(),
		Cutter:            DefaultCutterSettings(),
		RecentDescriptors: []string{},
	}
}

// AddRecent records a descriptor as most recently used, removing duplicates
// and keeping at most ten entries.
func (c *AppConfig) AddRecent(descriptor string) {
	recent := []string{descriptor}
	for _, d := range c.RecentDescriptors {
		if d != descriptor && len(recent) < maxRecentDescriptors {
			recent = append(recent, d)
		}
	}
	c.RecentDescriptors = recent
}
