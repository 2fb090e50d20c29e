package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMarginLeft = 15.0
	pageMarginTop  = 20.0
)

func fmtMicrons(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f µm", *v)
}

func fmtCelsius(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f °C", *v)
}

func fmtPercentVal(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f %%", *v)
}

// reportRenderer walks a reportPlan into an A4 document. Core fonts are
// cp1252, so every string goes through the unicode translator.
type reportRenderer struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	contentW float64
}

func (r *reportRenderer) cell(w, h float64, txt, border string, ln int, align string, fill bool) {
	r.pdf.CellFormat(w, h, r.tr(txt), border, ln, align, fill, 0, "")
}

func (r *reportRenderer) multi(w, h float64, txt string) {
	r.pdf.MultiCell(w, h, r.tr(txt), "", "L", false)
}

func (r *reportRenderer) heading(text string) {
	r.pdf.SetFont("Helvetica", "B", 16)
	r.cell(r.contentW, 10, text, "", 1, "L", false)
	r.pdf.SetDrawColor(120, 120, 120)
	r.pdf.Line(pageMarginLeft, r.pdf.GetY(), pageMarginLeft+r.contentW, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *reportRenderer) labelValue(labelW float64, label, value string) {
	r.pdf.SetFont("Helvetica", "B", 11)
	r.cell(labelW, 7, label, "", 0, "L", false)
	r.pdf.SetFont("Helvetica", "", 11)
	r.cell(r.contentW-labelW, 7, value, "", 1, "L", false)
}

// renderReport renders a plan and returns the document bytes plus the final
// page count.
func renderReport(plan *reportPlan) ([]byte, int, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginLeft, pageMarginTop, pageMarginLeft)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AliasNbPages("")

	pageW, pageH := pdf.GetPageSize()
	r := &reportRenderer{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		contentW: pageW - 2*pageMarginLeft,
	}

	// Watermark the simulated-data section, including its overflow pages.
	simWatermark := false
	pdf.SetHeaderFunc(func() {
		if !simWatermark {
			return
		}
		pdf.SetFont("Helvetica", "B", 72)
		pdf.SetTextColor(215, 215, 215)
		pdf.TransformBegin()
		pdf.TransformRotate(45, pageW/2, pageH/2)
		pdf.SetXY(pageW/2-70, pageH/2-10)
		pdf.CellFormat(140, 20, "SIMULATED", "", 0, "C", false, 0, "")
		pdf.TransformEnd()
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(pageMarginLeft, pageMarginTop)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(r.contentW/2, 8, r.tr(plan.FooterName), "", 0, "L", false, 0, "")
		pdf.CellFormat(r.contentW/2, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	r.renderCover(plan)
	r.renderSummary(plan)
	r.renderStandards(plan)
	r.renderDFTSummary(plan)

	if len(plan.Simulated) > 0 {
		simWatermark = true
		r.renderSimulated(plan)
		simWatermark = false
	}

	if len(plan.NCRRows) > 0 {
		r.renderNCRs(plan)
	}

	r.renderInspectionDetails(plan)

	if pdf.Err() {
		return nil, 0, fmt.Errorf("render report: %w", pdf.Error())
	}
	pageCount := pdf.PageCount()
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, fmt.Errorf("serialize report: %w", err)
	}
	return out.Bytes(), pageCount, nil
}

func (r *reportRenderer) renderCover(plan *reportPlan) {
	pdf := r.pdf
	pdf.AddPage()

	if len(plan.Badge) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("cover_badge", opts, bytes.NewReader(plan.Badge))
		pdf.ImageOptions("cover_badge", pageMarginLeft+(r.contentW-80)/2, 35, 80, 0, false, opts, 0, "")
		pdf.SetY(90)
	} else {
		pdf.SetY(70)
	}

	pdf.SetFont("Helvetica", "B", 28)
	r.cell(r.contentW, 14, "Inspection Report", "", 1, "C", false)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 16)
	r.cell(r.contentW, 9, plan.Cover.ProjectName, "", 1, "C", false)
	pdf.Ln(14)

	rows := [][2]string{
		{"Organization", plan.Cover.OrgName},
		{"Client", plan.Cover.ClientName},
		{"Site address", plan.Cover.SiteAddress},
		{"Report date", plan.Cover.ReportDate.Format("02 Jan 2006")},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		r.labelValue(45, row[0], row[1])
	}
}

func (r *reportRenderer) renderSummary(plan *reportPlan) {
	r.pdf.AddPage()
	r.heading("Executive Summary")

	rows := [][2]string{
		{"Total members", fmt.Sprintf("%d", plan.Summary.TotalMembers)},
		{"Members inspected", fmt.Sprintf("%d (%s)", plan.Summary.InspectedCount, plan.Summary.InspectedPct)},
		{"Passed", fmt.Sprintf("%d", plan.Summary.Passed)},
		{"Repair required", fmt.Sprintf("%d", plan.Summary.RepairRequired)},
		{"Open NCRs", fmt.Sprintf("%d", plan.Summary.OpenNCRs)},
	}
	for _, row := range rows {
		r.labelValue(60, row[0], row[1])
	}
}

func (r *reportRenderer) renderStandards(plan *reportPlan) {
	r.pdf.AddPage()
	r.heading("Standards & References")

	for _, section := range plan.Standards {
		r.pdf.SetFont("Helvetica", "B", 12)
		r.cell(r.contentW, 8, section.Heading, "", 1, "L", false)
		r.pdf.SetFont("Helvetica", "", 10)
		r.multi(r.contentW, 5.5, section.Body)
		r.pdf.Ln(4)
	}
}

func (r *reportRenderer) renderDFTSummary(plan *reportPlan) {
	pdf := r.pdf
	pdf.AddPage()
	r.heading("DFT Summary")

	if len(plan.DFTRows) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		r.cell(r.contentW, 8, "No DFT batches recorded.", "", 1, "L", false)
		return
	}

	colW := []float64{45, 35, 35, 35, r.contentW - 150}
	headers := []string{"Member", "Inspected", "Average DFT", "Required DFT", "Result"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		r.cell(colW[i], 8, h, "1", 0, "L", true)
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range plan.DFTRows {
		r.cell(colW[0], 7, row.MemberRef, "1", 0, "L", false)
		r.cell(colW[1], 7, row.InspectedAt.Format("02/01/2006"), "1", 0, "L", false)
		r.cell(colW[2], 7, fmtMicrons(row.Average), "1", 0, "R", false)
		r.cell(colW[3], 7, fmtMicrons(row.RequiredDFT), "1", 0, "R", false)
		r.cell(colW[4], 7, row.Verdict, "1", 1, "C", false)
	}
}

func (r *reportRenderer) renderSimulated(plan *reportPlan) {
	pdf := r.pdf
	pdf.AddPage()
	r.heading("Simulated Datasets")

	pdf.SetFont("Helvetica", "I", 10)
	r.multi(r.contentW, 5.5,
		"The data in this section is synthetically generated for demonstration and is excluded from all compliance determinations.")
	pdf.Ln(4)

	colW := []float64{40, 20, 25, 25, 25, r.contentW - 135}
	for _, section := range plan.Simulated {
		pdf.SetFont("Helvetica", "B", 12)
		r.cell(r.contentW, 8, section.Label, "", 1, "L", false)

		headers := []string{"Member", "Count", "Min", "Max", "Mean", "Std Dev"}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(235, 235, 235)
		for i, h := range headers {
			r.cell(colW[i], 8, h, "1", 0, "L", true)
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for _, m := range section.Members {
			r.cell(colW[0], 7, m.Reference, "1", 0, "L", false)
			r.cell(colW[1], 7, fmt.Sprintf("%d", m.Stats.Count), "1", 0, "R", false)
			r.cell(colW[2], 7, fmt.Sprintf("%.1f", m.Stats.Min), "1", 0, "R", false)
			r.cell(colW[3], 7, fmt.Sprintf("%.1f", m.Stats.Max), "1", 0, "R", false)
			r.cell(colW[4], 7, fmt.Sprintf("%.1f", m.Stats.Mean), "1", 0, "R", false)
			r.cell(colW[5], 7, fmt.Sprintf("%.2f", m.Stats.StdDev), "1", 1, "R", false)
		}
		pdf.Ln(6)
	}
}

func (r *reportRenderer) renderNCRs(plan *reportPlan) {
	pdf := r.pdf
	pdf.AddPage()
	r.heading("Non-Conformance Reports")

	colW := []float64{30, 35, 22, 28, 28, r.contentW - 143}
	headers := []string{"NCR", "Member", "Status", "Raised", "Closed", "Description"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		r.cell(colW[i], 8, h, "1", 0, "L", true)
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range plan.NCRRows {
		closed := "—"
		if row.ClosedAt != nil {
			closed = row.ClosedAt.Format("02/01/2006")
		}
		r.cell(colW[0], 7, row.Reference, "1", 0, "L", false)
		r.cell(colW[1], 7, row.MemberRef, "1", 0, "L", false)
		r.cell(colW[2], 7, row.Status, "1", 0, "L", false)
		r.cell(colW[3], 7, row.RaisedAt.Format("02/01/2006"), "1", 0, "L", false)
		r.cell(colW[4], 7, closed, "1", 0, "L", false)
		r.cell(colW[5], 7, row.Description, "1", 1, "L", false)
	}
}

func (r *reportRenderer) renderInspectionDetails(plan *reportPlan) {
	pdf := r.pdf
	for _, detail := range plan.Details {
		pdf.AddPage()
		r.heading(fmt.Sprintf("Inspection — %s", detail.MemberRef))

		rows := [][2]string{
			{"Date / time", detail.InspectedAt.Format("02 Jan 2006 15:04")},
			{"Location", detail.Location},
			{"Status", detail.Status},
		}
		for _, row := range rows {
			if row[1] == "" {
				continue
			}
			r.labelValue(50, row[0], row[1])
		}
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "B", 12)
		r.cell(r.contentW, 8, "Environmental readings", "", 1, "L", false)
		spread := "—"
		conforms := "—"
		if detail.SpreadKnown {
			spread = fmt.Sprintf("%.1f °C", detail.Spread)
			if detail.SpreadConforms {
				conforms = fmt.Sprintf("Yes (>= %.0f °C)", DewPointConformanceThreshold)
			} else {
				conforms = fmt.Sprintf("No (< %.0f °C)", DewPointConformanceThreshold)
			}
		}
		envRows := [][2]string{
			{"Ambient temperature", fmtCelsius(detail.AmbientTemp)},
			{"Steel temperature", fmtCelsius(detail.SteelTemp)},
			{"Dew point", fmtCelsius(detail.DewPoint)},
			{"Relative humidity", fmtPercentVal(detail.RelativeHumidity)},
			{"Dew point spread", spread},
			{"Conforms", conforms},
		}
		for _, row := range envRows {
			r.labelValue(55, row[0], row[1])
		}
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "B", 12)
		r.cell(r.contentW, 8, "DFT batch", "", 1, "L", false)
		if !detail.HasBatch {
			pdf.SetFont("Helvetica", "I", 11)
			r.cell(r.contentW, 7, "No DFT batch recorded for this inspection.", "", 1, "L", false)
			continue
		}
		stats := detail.BatchStats
		batchRows := [][2]string{
			{"Readings", fmt.Sprintf("%d", stats.Count)},
			{"Minimum", fmt.Sprintf("%.1f µm", stats.Min)},
			{"Maximum", fmt.Sprintf("%.1f µm", stats.Max)},
			{"Average", fmt.Sprintf("%.1f µm", stats.Mean)},
			{"Std deviation", fmt.Sprintf("%.2f µm", stats.StdDev)},
		}
		for _, row := range batchRows {
			r.labelValue(55, row[0], row[1])
		}
	}
}
