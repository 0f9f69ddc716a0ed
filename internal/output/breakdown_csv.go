package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// BreakdownFilename is the download name offered for a breakdown export.
const BreakdownFilename = "sip_breakdown.csv"

// BreakdownHeader is the header row of the year-by-year export.
var BreakdownHeader = []string{"Year", "Monthly Investment", "Total Invested", "Interest Earned", "Total Value"}

// BreakdownCSVExporter exports the yearly breakdown. A single scenario uses
// the plain download layout; several scenarios get a leading Scenario column.
type BreakdownCSVExporter struct{}

func (b BreakdownCSVExporter) Name() string { return "breakdown-csv" }

func (b BreakdownCSVExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	if len(results.Scenarios) == 1 {
		if err := WriteBreakdownCSV(buf, results.Scenarios[0].Result.Breakdown); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	w := csv.NewWriter(buf)
	if err := w.Write(append([]string{"Scenario"}, BreakdownHeader...)); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, rec := range sc.Result.Breakdown {
			if err := w.Write(append([]string{sc.Name}, breakdownRow(rec)...)); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// WriteBreakdownCSV writes the header and one row per record.
func WriteBreakdownCSV(out io.Writer, rows []domain.YearlyRecord) error {
	w := csv.NewWriter(out)
	if err := w.Write(BreakdownHeader); err != nil {
		return err
	}
	for _, rec := range rows {
		if err := w.Write(breakdownRow(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func breakdownRow(rec domain.YearlyRecord) []string {
	return []string{
		intToString(rec.Year),
		rec.MonthlyInvestment.String(),
		rec.InvestedAmount.String(),
		rec.InterestEarned.String(),
		rec.TotalValue.String(),
	}
}

// ParseBreakdownCSV reads records written by WriteBreakdownCSV.
func ParseBreakdownCSV(in io.Reader) ([]domain.YearlyRecord, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(BreakdownHeader)

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("breakdown csv: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("breakdown csv: %w", err)
	}
	for i, h := range BreakdownHeader {
		if header[i] != h {
			return nil, fmt.Errorf("breakdown csv: column %d is %q, want %q", i+1, header[i], h)
		}
	}

	var rows []domain.YearlyRecord
	for line := 2; ; line++ {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("breakdown csv: %w", err)
		}
		rec, err := parseBreakdownRow(fields)
		if err != nil {
			return nil, fmt.Errorf("breakdown csv line %d: %w", line, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func parseBreakdownRow(fields []string) (domain.YearlyRecord, error) {
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.YearlyRecord{}, fmt.Errorf("year: %w", err)
	}
	amounts := make([]decimal.Decimal, 4)
	for i := range amounts {
		if amounts[i], err = decimal.NewFromString(fields[i+1]); err != nil {
			return domain.YearlyRecord{}, fmt.Errorf("%s: %w", BreakdownHeader[i+1], err)
		}
	}
	return domain.YearlyRecord{
		Year:              year,
		MonthlyInvestment: amounts[0],
		InvestedAmount:    amounts[1],
		InterestEarned:    amounts[2],
		TotalValue:        amounts[3],
	}, nil
}
