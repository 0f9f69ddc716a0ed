package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
	money "github.com/sipcalc/sip-calculator/pkg/decimal"
)

// corpusPrecision bounds the fractional digits carried between months.
// Every reported figure is rounded to whole units, far above this.
const corpusPrecision = 10

const monthsPerYear = 12

var one = decimal.NewFromInt(1)

// contributionPlan is the part of an InvestmentConfig the compounding loop needs.
type contributionPlan struct {
	monthly     decimal.Decimal
	monthlyRate decimal.Decimal
	stepUp      decimal.Decimal // fractional yearly increase
	lumpsum     decimal.Decimal
}

// accumulation is the loop state after the last simulated month.
type accumulation struct {
	corpus        decimal.Decimal
	totalInvested decimal.Decimal
	breakdown     []domain.YearlyRecord
}

func newContributionPlan(cfg domain.InvestmentConfig, effectiveReturn decimal.Decimal) contributionPlan {
	return contributionPlan{
		monthly:     cfg.MonthlyInvestment,
		monthlyRate: money.MonthlyRate(effectiveReturn),
		stepUp:      money.PercentRate(cfg.StepUpPercentage),
		lumpsum:     cfg.InitialLumpsum,
	}
}

// run simulates years of annuity-due monthly compounding: each month the
// contribution is added first, then the whole balance grows for the month.
// The step-up is applied after a year is recorded, so it takes effect the
// following year. years <= 0 performs no iterations and leaves the lumpsum.
func (p contributionPlan) run(years int, record bool) accumulation {
	acc := accumulation{corpus: p.lumpsum, totalInvested: p.lumpsum}
	if record && years > 0 {
		acc.breakdown = make([]domain.YearlyRecord, 0, years)
	}
	growth := one.Add(p.monthlyRate)
	stepUp := one.Add(p.stepUp)
	current := p.monthly

	for year := 1; year <= years; year++ {
		for month := 0; month < monthsPerYear; month++ {
			acc.corpus = acc.corpus.Add(current).Mul(growth).Round(corpusPrecision)
			acc.totalInvested = acc.totalInvested.Add(current)
		}
		if record {
			acc.breakdown = append(acc.breakdown, domain.YearlyRecord{
				Year:              year,
				InvestedAmount:    money.RoundUnits(acc.totalInvested),
				TotalValue:        money.RoundUnits(acc.corpus),
				InterestEarned:    money.RoundUnits(acc.corpus.Sub(acc.totalInvested)),
				MonthlyInvestment: money.RoundUnits(current),
			})
		}
		current = current.Mul(stepUp).Round(corpusPrecision)
	}
	return acc
}

// delayedValue is the delay comparator: the same plan started one year later,
// i.e. one year shorter, reported nominally with no tax or inflation applied.
func (p contributionPlan) delayedValue(years int) decimal.Decimal {
	return p.run(years-1, false).corpus
}
