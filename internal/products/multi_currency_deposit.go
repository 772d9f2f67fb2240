package products

import (
	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// MultiCurrencyDepositScenario scores the multi-currency deposit: 14.5%
// rate over KZT/USD/RUB/EUR with unrestricted top-up and withdrawal.
type MultiCurrencyDepositScenario struct{}

const multiCurrencyDepositRate = 0.145

func (MultiCurrencyDepositScenario) Product() string { return MultiCurrencyDeposit }

func (MultiCurrencyDepositScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	stabilityScore := depositStabilityScore(balance, p.Status)

	currencyRatio := currencyActivityRatio(sum)
	currencyScore := currencyActivityScore(sum, currencyRatio)
	if currencyScore > 0.7 {
		reasons = append(reasons, "Активные валютные операции")
	}

	rebalancingScore := rebalancingNeedScore(sum)
	savingsScore := savingsBehaviorScore(sum)

	score := stabilityScore*0.4 + currencyScore*0.35 + rebalancingScore*0.15 + savingsScore*0.1
	score = scoring.Clamp(score)

	if balance < 500000 {
		score *= 0.2
	} else if balance < 1000000 {
		score *= 0.6
	}
	if currencyRatio >= 0.3 {
		score = capped(score*1.2, 1.0)
		reasons = append(reasons, "Бонус за высокую валютную активность")
	}

	benefit := balance * (multiCurrencyDepositRate + 0.02 + 0.01) * score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
	}
}

func depositStabilityScore(balance float64, status string) float64 {
	var base float64
	switch {
	case balance >= 5000000:
		base = 1.0
	case balance >= 2000000:
		base = 0.8
	case balance >= 1000000:
		base = 0.6
	case balance >= 500000:
		base = 0.4
	default:
		base = 0.1
	}
	return capped(base+statusExact(status, 0.2, 0.1, 0.05, 0, 0), 1.0)
}

// currencyActivityRatio is the share of foreign-currency operations across
// the whole history, transfers and transactions alike.
func currencyActivityRatio(sum *analytics.Summary) float64 {
	total := len(sum.Profile.Transfers) + len(sum.Profile.Transactions)
	if total == 0 {
		return 0
	}
	var currencyOps int
	for _, tr := range sum.Profile.Transfers {
		if isFXTransfer(tr) {
			currencyOps++
		}
	}
	for _, tx := range sum.Profile.Transactions {
		if analytics.ForeignCurrency(tx.Currency) {
			currencyOps++
		}
	}
	return float64(currencyOps) / float64(total)
}

func currencyActivityScore(sum *analytics.Summary, ratio float64) float64 {
	if len(sum.Profile.Transfers)+len(sum.Profile.Transactions) == 0 {
		return 0
	}
	switch {
	case ratio >= 0.3:
		return 1.0
	case ratio >= 0.2:
		return 0.8
	case ratio >= 0.1:
		return 0.6
	case ratio >= 0.05:
		return 0.4
	default:
		return 0.1
	}
}

func rebalancingNeedScore(sum *analytics.Summary) float64 {
	total := len(sum.Profile.Transfers)
	if total == 0 {
		return 0
	}
	ratio := float64(sum.TransferCountOfTypes(fxTransferTypes...)) / float64(total)
	switch {
	case ratio >= 0.2:
		return 1.0
	case ratio >= 0.1:
		return 0.7
	case ratio >= 0.05:
		return 0.4
	default:
		return 0.1
	}
}

func savingsBehaviorScore(sum *analytics.Summary) float64 {
	count := sum.TransferCountOfTypes(savingsTransferTypes...)
	switch {
	case count >= 5:
		return 1.0
	case count >= 3:
		return 0.7
	case count >= 1:
		return 0.4
	default:
		return 0.1
	}
}
