package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFFormatter renders an A4 report: one page of headline figures per
// scenario followed by its yearly breakdown table. Core PDF fonts are
// Latin-1 only, so amounts carry ISO currency codes rather than symbols.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	r := &pdfReport{
		pdf:     fpdf.New("P", "mm", "A4", ""),
		results: results,
		cur:     currencyOf(results),
	}
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle("SIP Projection Report", true)

	r.addTitlePage()
	for i, sc := range results.Scenarios {
		r.addScenario(i, sc)
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type pdfReport struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	results *domain.ScenarioComparison
	cur     string
}

func (r *pdfReport) addTitlePage() {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 26)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(40)
	r.pdf.CellFormat(contentWidth, 15, "SIP Projection Report", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(5)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("%d scenario(s), amounts in %s", len(r.results.Scenarios), r.cur), "", 1, "C", false, 0, "")

	if hs := Highlights(r.results); len(hs) > 0 {
		r.pdf.Ln(15)
		r.drawSectionHeader("Summary & Recommendations")
		r.pdf.SetFont("Arial", "", 11)
		r.pdf.SetTextColor(50, 50, 50)
		for _, h := range hs {
			r.pdf.CellFormat(contentWidth, 7, r.tr(fmt.Sprintf("%s: %s", h.Criterion, h.Scenario)), "", 1, "L", false, 0, "")
		}
	}

	r.pdf.Ln(10)
	r.drawSectionHeader("Key Assumptions")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for _, a := range assumptionsFor(r.results) {
		r.pdf.MultiCell(contentWidth, 5, r.tr("- "+a), "", "L", false)
	}
}

func (r *pdfReport) addScenario(i int, sc domain.ScenarioSummary) {
	res := sc.Result
	r.pdf.AddPage()
	r.drawSectionHeader(r.tr(fmt.Sprintf("Scenario %d: %s", i+1, sc.Name)))

	rows := [][]string{
		{"Monthly Investment", FormatCurrencyCode(sc.Config.MonthlyInvestment, r.cur)},
		{"Expected / Effective Return", FormatPercentage(sc.Config.ExpectedReturn) + " / " + FormatPercentage(res.EffectiveReturn)},
		{"Time Period", fmt.Sprintf("%d years", sc.Config.TimePeriod)},
		{"Annual Step-up", FormatPercentage(sc.Config.StepUpPercentage)},
		{"Total Invested", FormatCurrencyCode(res.TotalInvested, r.cur)},
		{"Total Returns", FormatCurrencyCode(res.TotalReturns, r.cur)},
		{"Total Value", FormatCurrencyCode(res.TotalValue, r.cur)},
		{"Tax on Gains", FormatCurrencyCode(res.TaxAmount, r.cur)},
		{"Post-Tax Value", FormatCurrencyCode(res.PostTaxValue, r.cur)},
		{"Real Value (today)", FormatCurrencyCode(res.RealValue, r.cur)},
		{"Cost of 1-Year Delay", FormatCurrencyCode(res.CostOfDelay, r.cur)},
		{"Wealth Multiplier", FormatMultiplier(res.WealthMultiplier)},
	}
	if sc.Config.HasGoal() {
		rows = append(rows,
			[]string{"Goal", FormatCurrencyCode(sc.Config.TargetAmount, r.cur)},
			[]string{"Goal Achieved", FormatPercentage(res.GoalAchievedPercentage)},
		)
	}
	widths := []float64{90, 90}
	for _, row := range rows {
		r.drawTableRow(row, widths, false)
	}

	r.pdf.Ln(6)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 7, "Milestones", "", 1, "L", false, 0, "")
	for _, m := range res.Milestones {
		r.drawTableRow([]string{m.Label, FormatMilestoneYear(m)}, widths, false)
	}

	r.pdf.Ln(6)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 7, "Yearly Breakdown", "", 1, "L", false, 0, "")
	tableWidths := []float64{20, 40, 40, 40, 40}
	r.drawTableHeader(BreakdownHeader, tableWidths)
	for _, y := range res.Breakdown {
		r.drawTableRow([]string{
			intToString(y.Year),
			FormatCurrencyCode(y.MonthlyInvestment, r.cur),
			FormatCurrencyCode(y.InvestedAmount, r.cur),
			FormatCurrencyCode(y.InterestEarned, r.cur),
			FormatCurrencyCode(y.TotalValue, r.cur),
		}, tableWidths, y.Year == len(res.Breakdown))
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
