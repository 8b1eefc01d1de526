// Package projection computes savings growth and retirement projections.
// Arithmetic runs on decimals to keep repeated compounding exact, then
// rounds each reported figure to whole cents.
package projection

import (
	"finbud/internal/core"

	"github.com/shopspring/decimal"
)

// YearPoint is one yearly checkpoint of a projection.
type YearPoint struct {
	Year  int        `json:"year"`
	Value core.Money `json:"valueCents"`
}

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

func toMoney(d decimal.Decimal) core.Money {
	return core.Money{Cents: d.Mul(hundred).Round(0).IntPart()}
}

func fromMoney(m core.Money) decimal.Decimal {
	return decimal.NewFromInt(m.Cents).Div(hundred)
}

// CompoundInterest grows principal with monthly contributions at annualRate
// percent, compounded monthly, and reports a checkpoint after each full
// year. Contributions land at the end of each month, after that month's
// interest.
func CompoundInterest(principal, monthlyContribution core.Money, annualRate float64, years int) []YearPoint {
	if years <= 0 {
		return nil
	}

	monthlyRate := decimal.NewFromFloat(annualRate).Div(hundred).Div(twelve)
	balance := fromMoney(principal)
	contribution := fromMoney(monthlyContribution)

	points := make([]YearPoint, 0, years)
	for year := 1; year <= years; year++ {
		for month := 0; month < 12; month++ {
			balance = balance.Mul(one.Add(monthlyRate)).Add(contribution)
		}
		points = append(points, YearPoint{Year: year, Value: toMoney(balance)})
	}
	return points
}

// RetirementProjection pairs the nominal future value with its
// inflation-adjusted equivalent in today's money.
type RetirementProjection struct {
	FutureValue core.Money  `json:"futureValueCents"`
	RealValue   core.Money  `json:"realValueCents"`
	Years       int         `json:"years"`
	YearPoints  []YearPoint `json:"yearPoints"`
}

// RetirementFutureValue compounds currentSavings plus annual contributions
// at nominalRate percent for the given horizon, then discounts the result by
// the real rate derived from inflation: (1+nominal)/(1+inflation)-1.
func RetirementFutureValue(currentSavings, annualContribution core.Money, nominalRate, inflationRate float64, years int) RetirementProjection {
	if years <= 0 {
		return RetirementProjection{FutureValue: currentSavings, RealValue: currentSavings}
	}

	growth := one.Add(decimal.NewFromFloat(nominalRate).Div(hundred))
	balance := fromMoney(currentSavings)
	contribution := fromMoney(annualContribution)

	points := make([]YearPoint, 0, years)
	for year := 1; year <= years; year++ {
		balance = balance.Mul(growth).Add(contribution)
		points = append(points, YearPoint{Year: year, Value: toMoney(balance)})
	}

	// Discount the nominal outcome back to today's purchasing power.
	inflationGrowth := one.Add(decimal.NewFromFloat(inflationRate).Div(hundred))
	discount := inflationGrowth.Pow(decimal.NewFromInt(int64(years)))
	real := balance
	if !discount.IsZero() {
		real = balance.DivRound(discount, 8)
	}

	return RetirementProjection{
		FutureValue: toMoney(balance),
		RealValue:   toMoney(real),
		Years:       years,
		YearPoints:  points,
	}
}
