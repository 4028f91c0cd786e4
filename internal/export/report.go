package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/BagCut/internal/engine"
	"github.com/piwi3910/BagCut/internal/model"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Jobs"

// ReportRow is one processed batch job. Err is set when the job failed and
// Result is then ignored.
type ReportRow struct {
	Job    model.Job
	Result engine.Result
	Output string // Written file, if any
	Err    error
}

var reportHeaders = []string{
	"ID", "Label", "Descriptor",
	"Width (mm)", "Height (mm)", "Depth (mm)",
	"Glue (mm)", "Handle (mm)", "Bottom (mm)", "Bleed (mm)",
	"Force", "Variant", "Decision",
	"Board Width (mm)", "Board Height (mm)",
	"Fits", "Warnings", "Output", "Error",
}

// ExportReport writes a spreadsheet with one row per batch job.
func ExportReport(path string, rows []ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	for i, h := range reportHeaders {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	if err := f.SetCellStyle(reportSheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for r, row := range rows {
		for c, v := range reportValues(row) {
			if err := setCell(f, c+1, r+2, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(reportSheet, "B", "C", 32); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(reportSheet, cell, v); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cell, err)
	}
	return nil
}

// reportValues returns the cells of one row in header order.
func reportValues(row ReportRow) []interface{} {
	if row.Err != nil {
		values := make([]interface{}, len(reportHeaders))
		values[0], values[1], values[2] = row.Job.ID, row.Job.Label, row.Job.Descriptor
		for i := 3; i < len(values)-1; i++ {
			values[i] = ""
		}
		values[len(values)-1] = row.Err.Error()
		return values
	}

	res := row.Result
	m := res.Spec.MarginsMM()
	bw, bh := res.BoardSizeMM()

	return []interface{}{
		row.Job.ID, row.Job.Label, row.Job.Descriptor,
		roundTenth(model.PtToMm(res.Spec.Width)),
		roundTenth(model.PtToMm(res.Spec.Height)),
		roundTenth(model.PtToMm(res.Spec.Depth)),
		roundTenth(m.Glue), roundTenth(m.Handle), roundTenth(m.Bottom), roundTenth(m.Bleed),
		res.Spec.Force.String(), res.Variant.String(), res.Decision.String(),
		roundTenth(bw), roundTenth(bh),
		!res.Decision.Unfit(), strings.Join(res.Warnings, "; "), row.Output, "",
	}
}
