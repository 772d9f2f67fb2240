package products

import (
	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// InvestmentsScenario scores the brokerage account: zero commission, entry
// threshold of a few tenge, free first year.
type InvestmentsScenario struct{}

var investmentTransferTypes = []string{"invest_in", "invest_out", "deposit_topup_out", "deposit_fx_topup_out"}

var riskTransferTypes = []string{"invest_in", "invest_out", "fx_buy", "fx_sell", "gold_buy_out", "gold_sell_in"}

func (InvestmentsScenario) Product() string { return Investments }

func (InvestmentsScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	readinessScore := investmentReadinessScore(balance, p.Status)
	if readinessScore > 0.7 {
		reasons = append(reasons, "Финансовая готовность к инвестициям")
	}

	potentialScore := investmentPotentialScore(sum)
	if potentialScore > 0.7 {
		reasons = append(reasons, "Высокий инвестиционный потенциал")
	}

	riskScore := riskToleranceScore(sum)
	statusScore := statusExact(p.Status, 1.0, 0.8, 0.6, 0.4, 0.2)

	score := readinessScore*0.3 + potentialScore*0.35 + riskScore*0.2 + statusScore*0.15
	score = scoring.Clamp(score)

	if balance < 50000 {
		score *= 0.3
	} else if balance < 100000 {
		score *= 0.7
	}
	if !knownStatus(p.Status) {
		score *= 0.2
	}
	if balance >= 100000 {
		score = capped(score*1.1, 1.0)
	}

	benefit := balance * (0.05 + 0.01 + 0.005) * score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
	}
}

func investmentReadinessScore(balance float64, status string) float64 {
	var base float64
	switch {
	case balance >= 2000000:
		base = 1.0
	case balance >= 1000000:
		base = 0.8
	case balance >= 500000:
		base = 0.6
	case balance >= 100000:
		base = 0.4
	default:
		base = 0.1
	}
	return capped(base+statusExact(status, 0.2, 0.15, 0.1, 0.05, 0), 1.0)
}

// investmentPotentialScore averages prior investment-like operations with
// the variety of spending categories as a proxy for financial activity.
func investmentPotentialScore(sum *analytics.Summary) float64 {
	operations := sum.TransferCountOfTypes(investmentTransferTypes...)
	var operationsScore float64
	switch {
	case operations >= 5:
		operationsScore = 1.0
	case operations >= 3:
		operationsScore = 0.8
	case operations >= 1:
		operationsScore = 0.6
	default:
		operationsScore = 0.2
	}

	categories := len(sum.CategoryAmounts)
	var diversityScore float64
	switch {
	case categories >= 8:
		diversityScore = 1.0
	case categories >= 5:
		diversityScore = 0.8
	case categories >= 3:
		diversityScore = 0.6
	case categories >= 2:
		diversityScore = 0.4
	default:
		diversityScore = 0.1
	}

	return (operationsScore + diversityScore) / 2
}

func riskToleranceScore(sum *analytics.Summary) float64 {
	operations := sum.TransferCountOfTypes(riskTransferTypes...)
	var riskScore float64
	switch {
	case operations >= 3:
		riskScore = 1.0
	case operations >= 2:
		riskScore = 0.8
	case operations >= 1:
		riskScore = 0.6
	default:
		riskScore = 0.2
	}

	activity := len(sum.Profile.Transactions)
	var activityScore float64
	switch {
	case activity >= 30:
		activityScore = 1.0
	case activity >= 20:
		activityScore = 0.8
	case activity >= 10:
		activityScore = 0.6
	case activity >= 5:
		activityScore = 0.4
	default:
		activityScore = 0.1
	}

	return (riskScore + activityScore) / 2
}
