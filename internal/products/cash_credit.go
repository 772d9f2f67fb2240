package products

import (
	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// CashCreditScenario scores the cash loan: no collateral, 12% for the first
// year, aimed at clients with credit experience and large upcoming spending.
type CashCreditScenario struct{}

var highValueCategories = []string{
	"Медицина", "Ремонт дома", "Мебель", "Авто", "Путешествия",
	"Ювелирные украшения", "Подарки", "Спа и массаж",
}

func (CashCreditScenario) Product() string { return CashCredit }

func (CashCreditScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	stabilityScore := loanStabilityScore(balance)

	creditCount := sum.TransferCountOfTypes(creditTransferTypes...)
	creditScore := loanExperienceScore(sum, creditCount)
	if creditScore > 0.7 {
		reasons = append(reasons, "Опытный пользователь кредитных продуктов")
	}

	needScore := financingNeedScore(sum)
	statusScore := statusExact(p.Status, 1.0, 0.8, 0.6, 0.4, 0.2)

	score := stabilityScore*0.4 + creditScore*0.3 + needScore*0.2 + statusScore*0.1
	score = scoring.Clamp(score)

	if balance < 100000 {
		score *= 0.2
	} else if balance < 300000 {
		score *= 0.6
	}
	if !knownStatus(p.Status) {
		score *= 0.3
	}
	if transfers := len(sum.Profile.Transfers); transfers > 0 {
		if float64(creditCount)/float64(transfers) >= 0.3 {
			score = capped(score*1.2, 1.0)
			reasons = append(reasons, "Бонус за высокую кредитную активность")
		}
	}

	benefit := balance * (0.1 + 0.02 + 0.01) * score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
	}
}

func loanStabilityScore(balance float64) float64 {
	switch {
	case balance >= 2000000:
		return 1.0
	case balance >= 1000000:
		return 0.8
	case balance >= 500000:
		return 0.6
	case balance >= 300000:
		return 0.4
	case balance >= 100000:
		return 0.2
	default:
		return 0.1
	}
}

func loanExperienceScore(sum *analytics.Summary, creditCount int) float64 {
	if len(sum.Profile.Transfers) == 0 {
		return 0
	}
	switch {
	case creditCount >= 10:
		return 1.0
	case creditCount >= 5:
		return 0.8
	case creditCount >= 3:
		return 0.6
	case creditCount >= 1:
		return 0.4
	default:
		return 0.1
	}
}

// financingNeedScore blends the share of big-ticket spending with the ratio
// of spending to outgoing transfers.
func financingNeedScore(sum *analytics.Summary) float64 {
	if len(sum.Profile.Transactions) == 0 && len(sum.Profile.Transfers) == 0 {
		return 0
	}
	if sum.TotalSpending == 0 {
		return 0
	}

	highValueRatio := sum.CategoryShare(highValueCategories...)
	highValueScore := capped(highValueRatio*2, 1.0)

	var consumptionScore float64
	if sum.OutflowTotal > 0 {
		consumptionScore = capped(sum.TotalSpending/(sum.OutflowTotal+1)*0.5, 1.0)
	}

	return (highValueScore + consumptionScore) / 2
}
