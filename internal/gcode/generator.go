package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/BagCut/internal/model"
)

// Generator produces a knife/plotter program from a recorded diecut.
type Generator struct {
	Settings model.CutterSettings
	profile  model.GCodeProfile
}

// New returns a generator using the profile named in the settings.
func New(settings model.CutterSettings) *Generator {
	return NewWithProfile(settings, model.GetProfile(settings.GCodeProfile))
}

// NewWithProfile returns a generator using an explicit, possibly custom,
// post-processor profile.
func NewWithProfile(settings model.CutterSettings, profile model.GCodeProfile) *Generator {
	return &Generator{Settings: settings, profile: profile}
}

// Profile returns the post-processor profile in use.
func (g *Generator) Profile() model.GCodeProfile { return g.profile }

// GenerateDrawing produces the program for every line of a drawing. Units
// are millimetres with the origin at the bottom-left corner of the artboard.
// Each line is cut as rapid to start, plunge, feed to end and retract.
// Labels are written as comments.
func (g *Generator) GenerateDrawing(title string, d model.Drawing) string {
	var b strings.Builder

	ref := d.Artboard
	if ref.IsEmpty() {
		ref = d.Bounds
	}

	lines, labels := d.Lines(), d.Labels()
	g.writeHeader(&b, title, ref, len(lines), len(labels))

	for i, l := range lines {
		g.writeLine(&b, ref, l, i+1)
	}

	if len(labels) > 0 {
		b.WriteString("\n")
		b.WriteString(g.comment("--- Labels ---"))
		for _, l := range labels {
			text := strings.Join(strings.Fields(strings.ReplaceAll(l.Text, "\n", " / ")), " ")
			b.WriteString(g.comment(fmt.Sprintf("%s at X%s Y%s",
				text, g.format(toX(ref, l.Position.X)), g.format(toY(ref, l.Position.Y)))))
		}
	}

	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, title string, ref model.Rect, lines, labels int) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("BagCut GCode - %s", title)))
	b.WriteString(g.comment(fmt.Sprintf("Artboard: %.1f x %.1f mm", model.PtToMm(ref.Width()), model.PtToMm(ref.Height()))))
	b.WriteString(g.comment(fmt.Sprintf("Lines: %d, Labels: %d", lines, labels)))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.0f mm/min, Plunge: %.0f mm/min, Depth: %.2fmm",
		g.Settings.FeedRate, g.Settings.PlungeRate, g.Settings.CutDepth)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	// Write startup codes
	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	if p.ToolOn != "" {
		b.WriteString(p.ToolOn + "\n")
	}

	// Initial safe Z retract
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString("\n")
}

func (g *Generator) writeLine(b *strings.Builder, ref model.Rect, l model.RenderCommand, num int) {
	p := g.profile
	x0, y0 := toX(ref, l.Start.X), toY(ref, l.Start.Y)
	x1, y1 := toX(ref, l.End.X), toY(ref, l.End.Y)

	b.WriteString(g.comment(fmt.Sprintf("Line %d", num)))
	// Rapid to start
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(x0), g.format(y0)))
	// Plunge
	b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-g.Settings.CutDepth), g.format(g.Settings.PlungeRate)))
	// Cut
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(x1), g.format(y1), g.format(g.Settings.FeedRate)))
	// Retract
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))

	if p.ToolOff != "" {
		b.WriteString(p.ToolOff + "\n")
	}

	// Write end codes
	for _, code := range p.EndCode {
		// Replace [SafeZ] placeholder
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
}

// comment formats a comment line according to the profile's comment style.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}

func toX(ref model.Rect, pt float64) float64 { return model.PtToMm(pt - ref.Left) }
func toY(ref model.Rect, pt float64) float64 { return model.PtToMm(pt - ref.Bottom) }
