package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BagCut/internal/model"
	"github.com/piwi3910/BagCut/internal/surface"
)

// Proof page layout (mm).
const (
	proofMargin = 10.0
	proofFooter = 8.0
)

// Summary page layout (A4 portrait in mm).
const (
	summaryWidth  = 210.0
	summaryHeight = 297.0
	summaryMargin = 15.0
	qrSize        = 40.0
)

// ExportPDF writes a two page proof: the diecut at 1:1 followed by a job
// summary with a QR-coded ticket.
func ExportPDF(path string, d Diecut, style model.Style) error {
	pdf, err := buildPDF(d, style)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF writes the proof to w.
func WritePDF(w io.Writer, d Diecut, style model.Style) error {
	pdf, err := buildPDF(d, style)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(d Diecut, style model.Style) (*fpdf.Fpdf, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	f := frame{ref: d.Drawing.Bounds, margin: proofMargin}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: f.width(), Ht: f.height() + proofFooter},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(d.Title(), true)
	pdf.SetCreator("BagCut", true)

	addSpotColor(pdf, style.LineSpot)
	addSpotColor(pdf, style.LabelSpot)

	pdf.AddPage()
	renderProofPage(pdf, d, style, f)

	pdf.AddPageFormat("P", fpdf.SizeType{Wd: summaryWidth, Ht: summaryHeight})
	if err := renderSummaryPage(pdf, d); err != nil {
		return nil, err
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}
	return pdf, nil
}

func addSpotColor(pdf *fpdf.Fpdf, c model.SpotColor) {
	pdf.AddSpotColor(c.Name, percent(c.Cyan), percent(c.Magenta), percent(c.Yellow), percent(c.Black))
}

// percent clamps a 0-100 ink value to a byte.
func percent(v float64) byte {
	return byte(math.Round(math.Max(0, math.Min(100, v))))
}

// renderProofPage draws the recorded diecut at 1:1 scale.
func renderProofPage(pdf *fpdf.Fpdf, d Diecut, style model.Style, f frame) {
	// Cut and crease lines
	pdf.SetDrawSpotColor(style.LineSpot.Name, 100)
	pdf.SetLineWidth(style.LineWidth)
	for _, l := range d.Drawing.Lines() {
		pdf.Line(f.x(l.Start.X), f.yDown(l.Start.Y), f.x(l.End.X), f.yDown(l.End.Y))
	}

	// Labels
	pdf.SetFont("Helvetica", "", style.LabelFontSize)
	pdf.SetTextSpotColor(style.LabelSpot.Name, 100)
	for _, lbl := range d.Drawing.Labels() {
		for _, tl := range surface.LayoutLines(lbl.Text, lbl.Position, lbl.Rotation, style.LabelFontSize) {
			if tl.Text == "" {
				continue
			}
			x, y := f.x(tl.Origin.X), f.yDown(tl.Origin.Y)
			if lbl.Rotation != 0 {
				pdf.TransformBegin()
				pdf.TransformRotate(lbl.Rotation, x, y)
				pdf.Text(x, y, tl.Text)
				pdf.TransformEnd()
				continue
			}
			pdf.Text(x, y, tl.Text)
		}
	}

	// Artboard frame
	if ab := d.Drawing.Artboard; !ab.IsEmpty() {
		pdf.SetDrawSpotColor(style.LabelSpot.Name, 60)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{3, 2}, 0)
		pdf.Rect(f.x(ab.Left), f.yDown(ab.Top), model.PtToMm(ab.Width()), model.PtToMm(ab.Height()), "D")
		pdf.SetDashPattern([]float64{}, 0)
	}

	// Footer
	w, h := d.Result.BoardSizeMM()
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(proofMargin, f.height())
	footer := fmt.Sprintf("%s | %s diecut | board %.1f x %.1f mm | scale 1:1", d.Title(), d.Result.Variant, w, h)
	pdf.CellFormat(f.width()-2*proofMargin, proofFooter-2, footer, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the parameter table and the ticket QR code.
func renderSummaryPage(pdf *fpdf.Fpdf, d Diecut) error {
	contentW := summaryWidth - 2*summaryMargin

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(summaryMargin, summaryMargin)
	pdf.CellFormat(contentW, 10, "Diecut Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(summaryMargin, summaryMargin+12, summaryWidth-summaryMargin, summaryMargin+12)

	y := summaryMargin + 18

	res := d.Result
	m := res.Spec.MarginsMM()
	boardW, boardH := res.BoardSizeMM()

	fit := "Fits machine"
	if res.Decision.Unfit() {
		fit = "Does not fit, even as a half diecut"
	}

	items := []struct {
		label string
		value string
	}{
		{"Job", fmt.Sprintf("%s (%s)", d.Title(), d.Job.ID)},
		{"Descriptor", res.Spec.Descriptor},
		{"Width", mm(res.Spec.Width)},
		{"Height", mm(res.Spec.Height)},
		{"Depth", mm(res.Spec.Depth)},
		{"Glue Margin", millimetres(m.Glue)},
		{"Handle Margin", millimetres(m.Handle)},
		{"Bottom Margin", millimetres(m.Bottom)},
		{"Bleed", millimetres(m.Bleed)},
		{"Force", res.Spec.Force.String()},
		{"Variant", res.Variant.String()},
		{"Decision", res.Decision.String()},
		{"Board Size", fmt.Sprintf("%.1f x %.1f mm", boardW, boardH)},
		{"Machine", fmt.Sprintf("%s (%.0f x %.0f mm)", res.Limit.Name, res.Limit.Width, res.Limit.Height)},
		{"Fit", fit},
	}

	pdf.SetFont("Helvetica", "", 10)
	for i, item := range items {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetXY(summaryMargin, y)
		pdf.CellFormat(45, 6, item.label+":", "", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW-45, 6, item.value, "", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}

	// Generation warnings
	if len(res.Warnings) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(summaryMargin, y)
		pdf.CellFormat(contentW, 7, "WARNINGS", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range res.Warnings {
			pdf.SetXY(summaryMargin+5, y)
			pdf.CellFormat(contentW-5, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Ticket QR code
	ticket := NewTicket(d)
	png, err := ticket.QRCode(256)
	if err != nil {
		return err
	}
	name := ticketImageName(ticket)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

	y += 10
	pdf.ImageOptions(name, summaryMargin, y, qrSize, qrSize, false, opts, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(summaryMargin+qrSize+5, y)
	pdf.MultiCell(contentW-qrSize-5, 4, strings.Join([]string{
		"Job ticket",
		ticket.Descriptor,
		fmt.Sprintf("%s diecut, %.1f x %.1f mm", ticket.Variant, ticket.BoardWidth, ticket.BoardHeight),
	}, "\n"), "", "L", false)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetXY(summaryMargin, summaryHeight-summaryMargin)
	pdf.CellFormat(contentW, 4, "Generated by BagCut - Paper Bag Diecut Generator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// mm formats a length in points as millimetres with at most one decimal.
func mm(pt float64) string {
	return millimetres(model.PtToMm(pt))
}

func millimetres(v float64) string {
	return fmt.Sprintf("%g mm", roundTenth(v))
}
