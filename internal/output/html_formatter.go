package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with a growth chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  func(d decimal.Decimal) string { return FormatCurrency(d, "") },
	"pct":   FormatPercentage,
	"mult":  FormatMultiplier,
	"myear": FormatMilestoneYear,
	"add":   func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	cur := currencyOf(results)

	// "curr" closes over the report currency, so the template is cloned per call.
	tmpl, err := htmlTemplate.Clone()
	if err != nil {
		return nil, err
	}
	tmpl.Funcs(template.FuncMap{
		"curr": func(d decimal.Decimal) string { return FormatCurrency(d, cur) },
	})

	data := struct {
		*domain.ScenarioComparison
		Currency    string
		Highlights  []Highlight
		Assumptions []string
		Generated   string
	}{results, cur, Highlights(results), assumptionsFor(results), time.Now().Format("2 January 2006")}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
