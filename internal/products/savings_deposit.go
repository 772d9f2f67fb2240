package products

import (
	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// SavingsDepositScenario scores the savings deposit: the top 16.5% rate in
// exchange for freezing the funds until the end of the term.
type SavingsDepositScenario struct{}

const savingsDepositRate = 0.165

func (SavingsDepositScenario) Product() string { return SavingsDeposit }

func (SavingsDepositScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	stabilityScore := savingsStabilityScore(balance, p.Status)
	if stabilityScore > 0.8 {
		reasons = append(reasons, "Высокая финансовая стабильность")
	}

	balanceStability := balanceStabilityRatio(balance)
	freezeScore := freezeReadinessScore(sum, balanceStability)
	if freezeScore > 0.7 {
		reasons = append(reasons, "Готовность к заморозке средств")
	}

	savingsScore := savingsBehaviorScore(sum)
	statusScore := statusExact(p.Status, 1.0, 0.8, 0.6, 0.3, 0.2)

	score := stabilityScore*0.5 + freezeScore*0.3 + savingsScore*0.15 + statusScore*0.05
	score = scoring.Clamp(score)

	if balance < 1000000 {
		score *= 0.1
	} else if balance < 2000000 {
		score *= 0.5
	}
	if !knownStatus(p.Status) {
		score *= 0.3
	}
	if balanceStability >= 0.8 {
		score = capped(score*1.15, 1.0)
		reasons = append(reasons, "Бонус за стабильность баланса")
	}

	benefit := balance * (savingsDepositRate + 0.01 + 0.02) * score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
	}
}

func savingsStabilityScore(balance float64, status string) float64 {
	var base float64
	switch {
	case balance >= 10000000:
		base = 1.0
	case balance >= 5000000:
		base = 0.9
	case balance >= 2000000:
		base = 0.7
	case balance >= 1000000:
		base = 0.4
	default:
		base = 0.1
	}
	return capped(base+statusExact(status, 0.2, 0.1, 0.05, 0, 0), 1.0)
}

// balanceStabilityRatio estimates how steady the balance is from its size;
// per-month balance history is not part of the request.
func balanceStabilityRatio(balance float64) float64 {
	switch {
	case balance >= 5000000:
		return 0.9
	case balance >= 2000000:
		return 0.7
	case balance >= 1000000:
		return 0.5
	default:
		return 0.2
	}
}

func freezeReadinessScore(sum *analytics.Summary, balanceStability float64) float64 {
	// Validated amounts are never negative, so only an empty history lowers
	// the withdrawal signal.
	withdrawalScore := 1.0
	if len(sum.Profile.Transfers) == 0 {
		withdrawalScore = 0.5
	}

	longTermCount := sum.TransferCountOfTypes(savingsTransferTypes...)
	var longTermScore float64
	switch {
	case longTermCount >= 5:
		longTermScore = 1.0
	case longTermCount >= 3:
		longTermScore = 0.7
	case longTermCount >= 1:
		longTermScore = 0.4
	default:
		longTermScore = 0.1
	}

	return (balanceStability + withdrawalScore + longTermScore) / 3
}
