package products

import (
	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// AccumulationDepositScenario scores the accumulation deposit: 15.5% rate
// with top-ups allowed and withdrawals blocked.
type AccumulationDepositScenario struct{}

const accumulationDepositRate = 0.155

var depositTopupTypes = []string{"deposit_topup_out", "deposit_fx_topup_out"}

func (AccumulationDepositScenario) Product() string { return AccumulationDeposit }

func (AccumulationDepositScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	stabilityScore := accumulationStabilityScore(balance, p.Status)

	topupFrequency := sum.MonthlyFrequency(sum.TransferCountOfTypes(savingsTransferTypes...))
	accumulationScore := accumulationBehaviorScore(sum, topupFrequency)
	if accumulationScore > 0.7 {
		reasons = append(reasons, "Активное накопительное поведение")
	}

	regularityScore := depositRegularityScore(sum)
	statusScore := statusExact(p.Status, 1.0, 0.8, 0.6, 0.4, 0.2)

	score := stabilityScore*0.35 + accumulationScore*0.4 + regularityScore*0.15 + statusScore*0.1
	score = scoring.Clamp(score)

	if balance < 200000 {
		score *= 0.2
	} else if balance < 500000 {
		score *= 0.6
	}
	if !knownStatus(p.Status) {
		score *= 0.3
	}
	if topupFrequency >= 2 {
		score = capped(score*1.2, 1.0)
		reasons = append(reasons, "Бонус за регулярные пополнения")
	}

	benefit := balance * (accumulationDepositRate + 0.02 + 0.01) * score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
	}
}

func accumulationStabilityScore(balance float64, status string) float64 {
	var base float64
	switch {
	case balance >= 2000000:
		base = 1.0
	case balance >= 1000000:
		base = 0.8
	case balance >= 500000:
		base = 0.6
	case balance >= 200000:
		base = 0.4
	default:
		base = 0.1
	}
	return capped(base+statusExact(status, 0.2, 0.15, 0.1, 0.05, 0), 1.0)
}

// accumulationBehaviorScore averages the top-up frequency with the share of
// the balance routed into savings over the analysis period.
func accumulationBehaviorScore(sum *analytics.Summary, monthlyFrequency float64) float64 {
	var frequencyScore float64
	switch {
	case monthlyFrequency >= 3:
		frequencyScore = 1.0
	case monthlyFrequency >= 2:
		frequencyScore = 0.8
	case monthlyFrequency >= 1:
		frequencyScore = 0.6
	case monthlyFrequency >= 0.5:
		frequencyScore = 0.4
	default:
		frequencyScore = 0.1
	}

	var savingsRatio float64
	if balance := sum.Profile.AvgMonthlyBalance; balance > 0 {
		savingsRatio = sum.TransferAmountOfTypes(savingsTransferTypes...) / (balance * 3)
	}
	var ratioScore float64
	switch {
	case savingsRatio >= 0.2:
		ratioScore = 1.0
	case savingsRatio >= 0.15:
		ratioScore = 0.8
	case savingsRatio >= 0.1:
		ratioScore = 0.6
	case savingsRatio >= 0.05:
		ratioScore = 0.4
	default:
		ratioScore = 0.1
	}

	return (frequencyScore + ratioScore) / 2
}

func depositRegularityScore(sum *analytics.Summary) float64 {
	frequency := sum.MonthlyFrequency(sum.TransferCountOfTypes(depositTopupTypes...))
	switch {
	case frequency >= 2:
		return 1.0
	case frequency >= 1:
		return 0.7
	case frequency >= 0.5:
		return 0.4
	default:
		return 0.1
	}
}
