package output

import (
	"bytes"
	"fmt"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// TSVExporter renders the tab-separated table used for clipboard copies.
// Only the first scenario is rendered; the table has no scenario column.
type TSVExporter struct{}

func (t TSVExporter) Name() string { return "tsv" }

func (t TSVExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("Year\tInvested\tInterest\tTotal")
	if len(results.Scenarios) == 0 {
		return buf.Bytes(), nil
	}
	for _, r := range results.Scenarios[0].Result.Breakdown {
		fmt.Fprintf(&buf, "\n%d\t%s\t%s\t%s", r.Year, r.InvestedAmount, r.InterestEarned, r.TotalValue)
	}
	return buf.Bytes(), nil
}
