package rules

import (
	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/model"
)

// SpendingTrend compares recent actual spend against the earlier half of
// the history window.
type SpendingTrend string

const (
	TrendIncreasing SpendingTrend = "increasing"
	TrendDecreasing SpendingTrend = "decreasing"
	TrendStable     SpendingTrend = "stable"
)

// AffordabilityVerdict is the heuristic answer to "can I take this on?".
type AffordabilityVerdict string

const (
	VerdictAffordable   AffordabilityVerdict = "affordable"
	VerdictTight        AffordabilityVerdict = "tight"
	VerdictCannotAfford AffordabilityVerdict = "cannot_afford"
)

// trendThreshold is a fixed cutoff in currency units, not scaled to the data.
var trendThreshold = decimal.NewFromInt(100)

// tightRatio: remaining disposable under 20% of baseline reads as tight.
var tightRatio = decimal.NewFromFloat(0.2)

// MonthHistory is one historical month's spend against expected income.
type MonthHistory struct {
	TotalActual    decimal.Decimal
	ExpectedIncome decimal.Decimal
}

// AffordabilityResult is the evaluation of a scenario's monthly total
// against recent disposable income.
type AffordabilityResult struct {
	BaselineDisposable     decimal.Decimal // mean monthly disposable over the window
	SpendingTrend          SpendingTrend
	NewMonthlyObligations  decimal.Decimal
	RemainingAfterScenario decimal.Decimal
	Verdict                AffordabilityVerdict
}

// CalculateAffordability evaluates a hypothetical new recurring monthly cost
// against recent income/spend history. With no history at all, only a zero
// cost is affordable.
func CalculateAffordability(recentMonths []MonthHistory, scenarioMonthlyTotal decimal.Decimal) AffordabilityResult {
	if len(recentMonths) == 0 {
		verdict := VerdictCannotAfford
		if scenarioMonthlyTotal.IsZero() {
			verdict = VerdictAffordable
		}
		return AffordabilityResult{
			BaselineDisposable:     decimal.Zero,
			SpendingTrend:          TrendStable,
			NewMonthlyObligations:  scenarioMonthlyTotal,
			RemainingAfterScenario: scenarioMonthlyTotal.Neg(),
			Verdict:                verdict,
		}
	}

	n := len(recentMonths)
	disposableSum := decimal.Zero
	for _, m := range recentMonths {
		disposableSum = disposableSum.Add(m.ExpectedIncome.Sub(m.TotalActual))
	}
	baseline := disposableSum.Div(decimal.NewFromInt(int64(n)))

	// Trend: first-half mean vs second-half mean of actual spend. The first
	// half window is at least one month so a single-month history compares
	// against itself.
	mid := n / 2
	firstLen := mid
	if firstLen == 0 {
		firstLen = 1
	}
	firstAvg := meanActual(recentMonths[:firstLen])
	secondAvg := meanActual(recentMonths[mid:])
	trendDiff := secondAvg.Sub(firstAvg)

	trend := TrendStable
	switch {
	case trendDiff.GreaterThan(trendThreshold):
		trend = TrendIncreasing
	case trendDiff.LessThan(trendThreshold.Neg()):
		trend = TrendDecreasing
	}

	remaining := baseline.Sub(scenarioMonthlyTotal)

	verdict := VerdictAffordable
	if remaining.IsNegative() {
		verdict = VerdictCannotAfford
	} else if baseline.IsPositive() && remaining.Div(baseline).LessThan(tightRatio) {
		verdict = VerdictTight
	}

	return AffordabilityResult{
		BaselineDisposable:     baseline,
		SpendingTrend:          trend,
		NewMonthlyObligations:  scenarioMonthlyTotal,
		RemainingAfterScenario: remaining,
		Verdict:                verdict,
	}
}

func meanActual(months []MonthHistory) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range months {
		sum = sum.Add(m.TotalActual)
	}
	return sum.Div(decimal.NewFromInt(int64(len(months))))
}

// ScenarioMonthlyTotal sums the monthly cost lines of a scenario.
func ScenarioMonthlyTotal(expenses []model.ScenarioExpense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.MonthlyAmount)
	}
	return sum
}
