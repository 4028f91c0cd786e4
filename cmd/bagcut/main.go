// BagCut - paper bag diecut generator
//
// Reads bag dimensions from an artwork name such as "235x450x120+g15-h50"
// and writes the matching diecut as a PDF proof, SVG, PNG preview, DXF
// drawing or knife GCode. It also processes batch files and serves the
// generator over HTTP.
//
// Build:
//   go build -o bagcut ./cmd/bagcut
//
// Usage:
//   bagcut -name 250x350x100 -out bag.pdf
//   bagcut -batch jobs.xlsx -outdir out -format svg -report report.xlsx
//   bagcut -name 800_750_650 -compare
//   bagcut -serve :8080

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/BagCut/internal/descriptor"
	"github.com/piwi3910/BagCut/internal/engine"
	"github.com/piwi3910/BagCut/internal/export"
	"github.com/piwi3910/BagCut/internal/gcode"
	"github.com/piwi3910/BagCut/internal/importer"
	"github.com/piwi3910/BagCut/internal/model"
	"github.com/piwi3910/BagCut/internal/project"
	"github.com/piwi3910/BagCut/internal/server"
)

// formats lists the supported output formats.
var formats = []string{"pdf", "svg", "png", "dxf", "gcode", "json"}

type options struct {
	name          string
	label         string
	out           string
	format        string
	configPath    string
	profilesPath  string
	importProfile string
	machineWidth  float64
	machineHeight float64
	batch         string
	outDir        string
	report        string
	compare       bool
	serve         string
	usage         bool
}

func main() {
	var o options
	flag.StringVar(&o.name, "name", "", "Bag descriptor, e.g. 250x350x100_g20-h40-b25-bleed3")
	flag.StringVar(&o.label, "label", "", "Job label printed on the proof")
	flag.StringVar(&o.out, "out", "", "Output file; the format follows the extension")
	flag.StringVar(&o.format, "format", "", "Output format: "+strings.Join(formats, ", "))
	flag.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "Configuration file")
	flag.StringVar(&o.profilesPath, "profiles", project.DefaultProfilesPath(), "Custom GCode profiles file")
	flag.StringVar(&o.importProfile, "import-profile", "", "Add a GCode profile from a JSON file to the custom profiles")
	flag.Float64Var(&o.machineWidth, "machine-width", 0, "Machine bed width in mm (overrides config)")
	flag.Float64Var(&o.machineHeight, "machine-height", 0, "Machine bed height in mm (overrides config)")
	flag.StringVar(&o.batch, "batch", "", "CSV or Excel file with one descriptor per row")
	flag.StringVar(&o.outDir, "outdir", ".", "Output directory for batch files")
	flag.StringVar(&o.report, "report", "", "Excel report of a batch run")
	flag.BoolVar(&o.compare, "compare", false, "Compare the diecut variants across machines")
	flag.StringVar(&o.serve, "serve", "", "Serve the HTTP API on this address, e.g. :8080")
	flag.BoolVar(&o.usage, "usage", false, "Describe the descriptor notation")
	flag.Parse()

	if o.name == "" && flag.NArg() > 0 {
		o.name = flag.Arg(0)
	}

	if err := run(o); err != nil {
		log.Fatalf("bagcut: %v", err)
	}
}

func run(o options) error {
	if o.usage {
		fmt.Print(descriptor.Usage)
		return nil
	}

	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if o.machineWidth > 0 {
		cfg.Machine.Width = o.machineWidth
		cfg.Machine.Name = "Custom"
	}
	if o.machineHeight > 0 {
		cfg.Machine.Height = o.machineHeight
		cfg.Machine.Name = "Custom"
	}
	if !cfg.Machine.Valid() {
		return fmt.Errorf("invalid machine size %.0f x %.0f mm", cfg.Machine.Width, cfg.Machine.Height)
	}

	custom, err := project.LoadCustomProfiles(o.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load GCode profiles: %w", err)
	}
	if o.importProfile != "" {
		if custom, err = addProfile(o.profilesPath, o.importProfile, custom); err != nil {
			return err
		}
	}
	profile := project.ResolveProfile(cfg.Cutter.GCodeProfile, custom)

	switch {
	case o.serve != "":
		log.Printf("Serving diecuts on %s (machine %.0f x %.0f mm)", o.serve, cfg.Machine.Width, cfg.Machine.Height)
		return server.New(cfg, profile).Run(o.serve)
	case o.batch != "":
		return runBatch(o, cfg, profile)
	case o.name == "":
		if o.importProfile != "" {
			return nil
		}
		flag.Usage()
		return errors.New("no descriptor given")
	case o.compare:
		return runCompare(o.name, cfg)
	}

	format, err := resolveFormat(o.format, o.out)
	if err != nil {
		return err
	}

	job := model.NewJob(o.label, o.name)
	res, err := engine.Generate(o.name, engine.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	out := o.out
	if out == "" {
		out = descriptor.Format(res.Spec) + "." + format
	}
	for _, w := range res.Warnings {
		log.Printf("Warning: %s", w)
	}

	d := export.NewDiecut(job, res, cfg.Style.LabelFontSize)
	if err := writeOutput(out, format, d, cfg, profile); err != nil {
		return err
	}
	fmt.Printf("%s diecut written to %s\n", res.Variant, out)

	cfg.AddRecent(o.name)
	if err := project.SaveAppConfig(o.configPath, cfg); err != nil {
		log.Printf("Warning: could not save config: %v", err)
	}
	return nil
}

func addProfile(profilesPath, path string, custom []model.GCodeProfile) ([]model.GCodeProfile, error) {
	p, err := project.ImportProfile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to import GCode profile: %w", err)
	}
	replaced := false
	for i := range custom {
		if custom[i].Name == p.Name {
			custom[i] = p
			replaced = true
		}
	}
	if !replaced {
		custom = append(custom, p)
	}
	if err := project.SaveCustomProfiles(profilesPath, custom); err != nil {
		return nil, fmt.Errorf("failed to save GCode profiles: %w", err)
	}
	log.Printf("GCode profile %q saved to %s", p.Name, profilesPath)
	return custom, nil
}

// resolveFormat returns the explicit format, or the one implied by the
// output extension, defaulting to PDF.
func resolveFormat(format, out string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	if format == "" {
		return "pdf", nil
	}
	for _, f := range formats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(formats, ", "))
}

func writeOutput(path, format string, d export.Diecut, cfg model.AppConfig, profile model.GCodeProfile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	switch format {
	case "pdf":
		return export.ExportPDF(path, d, cfg.Style)
	case "svg":
		return export.ExportSVG(path, d, cfg.Style)
	case "png":
		return export.ExportPNG(path, d, export.DefaultPreviewScale)
	case "dxf":
		return export.ExportDXF(path, d, cfg.Style)
	case "gcode":
		code := gcode.NewWithProfile(cfg.Cutter, profile).GenerateDrawing(d.Title(), d.Drawing)
		if err := os.WriteFile(path, []byte(code), 0644); err != nil {
			return err
		}
		sum := gcode.Summarize(gcode.ParseGCode(code))
		log.Printf("%s: %d cuts, %.1f mm cut length, %.1f mm rapid travel",
			path, sum.Counts[gcode.MoveFeed], sum.CutLength, sum.RapidTravel)
		return nil
	case "json":
		data, err := json.MarshalIndent(server.DiecutResponse{
			Job:     d.Job,
			Result:  d.Result,
			Drawing: d.Drawing,
			Ticket:  export.NewTicket(d),
		}, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func runBatch(o options, cfg model.AppConfig, profile model.GCodeProfile) error {
	format, err := resolveFormat(o.format, "")
	if err != nil {
		return err
	}

	imported := importer.Import(o.batch)
	for _, w := range imported.Warnings {
		log.Printf("%s: %s", o.batch, w)
	}
	for _, e := range imported.Errors {
		log.Printf("%s: %s", o.batch, e)
	}
	if len(imported.Jobs) == 0 {
		return fmt.Errorf("no jobs found in %s", o.batch)
	}

	opts := engine.OptionsFromConfig(cfg)
	rows := make([]export.ReportRow, 0, len(imported.Jobs))
	failed := 0
	for i, job := range imported.Jobs {
		row := export.ReportRow{Job: job}
		res, err := engine.Generate(job.Descriptor, opts)
		if err == nil {
			row.Result = res
			row.Output = filepath.Join(o.outDir, batchFileName(job, format))
			d := export.NewDiecut(job, res, cfg.Style.LabelFontSize)
			err = writeOutput(row.Output, format, d, cfg, profile)
		}
		if err != nil {
			row.Err = err
			row.Output = ""
			failed++
			log.Printf("[%d/%d] %s: %v", i+1, len(imported.Jobs), job.Label, err)
		} else {
			log.Printf("[%d/%d] %s: %s diecut -> %s", i+1, len(imported.Jobs), job.Label, res.Variant, row.Output)
		}
		rows = append(rows, row)
	}

	if o.report != "" {
		if err := export.ExportReport(o.report, rows); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Printf("Report written to %s", o.report)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(rows))
	}
	return nil
}

// batchFileName builds a file name from the job ID and its label.
func batchFileName(job model.Job, format string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, job.Label)
	return job.ID + "_" + clean + "." + format
}

func runCompare(name string, cfg model.AppConfig) error {
	spec, err := descriptor.Parse(name, cfg.DefaultMargins)
	if err != nil {
		return err
	}
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(spec, cfg))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Scenario\tDecision\tFull (mm)\tFits\tHalf (mm)\tFits")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%.0f x %.0f\t%t\t%.0f x %.0f\t%t\n",
			r.Scenario.Name, r.Decision,
			r.FullWidth, r.FullHeight, r.FullFits,
			r.HalfWidth, r.HalfHeight, r.HalfFits)
	}
	return tw.Flush()
}
