package model

// GCodeProfile defines a post-processor configuration for different CNC
// controllers driving a knife or plotter head.
type GCodeProfile struct {
	Name        string `json:"name"`        // Profile name
	Description string `json:"description"` // Profile description
	IsBuiltIn   bool   `json:"-"`           // Shipped with the application

	// Startup codes
	StartCode []string `json:"start_code"` // Commands at start of file
	ToolOn    string   `json:"tool_on"`    // Knife/oscillator on (empty = none)
	ToolOff   string   `json:"tool_off"`   // Knife/oscillator off

	// Motion
	RapidMove string `json:"rapid_move"` // G0 or equivalent
	FeedMove  string `json:"feed_move"`  // G1 or equivalent

	// End codes
	EndCode []string `json:"end_code"` // Commands at end of file

	// Comment style
	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed, e.g., ")")

	DecimalPlaces int `json:"decimal_places"` // Number of decimal places for coordinates
}

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Standard Grbl configuration (Arduino CNC shields)",
		IsBuiltIn:     true,
		StartCode:     []string{"G90", "G21", "G17"},
		ToolOn:        "M3 S1000",
		ToolOff:       "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 CNC control software",
		IsBuiltIn:     true,
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		ToolOn:        "M3",
		ToolOff:       "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		IsBuiltIn:     true,
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		ToolOn:        "M3",
		ToolOff:       "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		IsBuiltIn:     true,
		StartCode:     []string{"G90", "G21"},
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a GCode profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1] // Return Generic (last one)
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}

// CutterSettings holds the knife/plotter parameters used for GCode output.
type CutterSettings struct {
	FeedRate     float64 `json:"feed_rate"`     // Cutting feed rate mm/min
	PlungeRate   float64 `json:"plunge_rate"`   // Knife plunge rate mm/min
	SafeZ        float64 `json:"safe_z"`        // Travel height mm
	CutDepth     float64 `json:"cut_depth"`     // Knife depth below the sheet surface mm
	GCodeProfile string  `json:"gcode_profile"` // Name of the GCode profile to use
}

func DefaultCutterSettings() CutterSettings {
	return CutterSettings{
		FeedRate:     3000.0,
		PlungeRate:   600.0,
		SafeZ:        5.0,
		CutDepth:     0.5,
		GCodeProfile: "Generic",
	}
}
