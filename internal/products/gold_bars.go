package products

import (
	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// GoldBarsScenario scores gold bars: 999.9 purity, bought in branches or the
// app, aimed at diversification and long-term value preservation.
type GoldBarsScenario struct{}

var diversificationTransferTypes = []string{"invest_in", "invest_out", "fx_buy", "fx_sell", "deposit_topup_out", "deposit_fx_topup_out"}

var longTermTransferTypes = []string{"deposit_topup_out", "deposit_fx_topup_out", "invest_in", "gold_buy_out"}

func (GoldBarsScenario) Product() string { return GoldBars }

func (GoldBarsScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	readinessScore := goldReadinessScore(balance, p.Status)
	if readinessScore > 0.8 {
		reasons = append(reasons, "Высокая финансовая готовность")
	}

	diversificationRatio := diversificationActivityRatio(sum)
	diversificationScore := diversificationNeedScore(sum, diversificationRatio)
	if diversificationScore > 0.7 {
		reasons = append(reasons, "Потребность в диверсификации портфеля")
	}

	longTermScore := longTermBehaviorScore(sum)
	statusScore := statusExact(p.Status, 1.0, 0.8, 0.6, 0.3, 0.2)

	score := readinessScore*0.4 + diversificationScore*0.3 + longTermScore*0.2 + statusScore*0.1
	score = scoring.Clamp(score)

	if balance < 500000 {
		score *= 0.2
	} else if balance < 1000000 {
		score *= 0.6
	}
	if !knownStatus(p.Status) {
		score *= 0.3
	}
	if diversificationRatio >= 0.3 {
		score = capped(score*1.15, 1.0)
		reasons = append(reasons, "Бонус за диверсификационную активность")
	}

	benefit := balance * (0.03 + 0.01 + 0.005) * score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
	}
}

func goldReadinessScore(balance float64, status string) float64 {
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
	return capped(base+statusExact(status, 0.2, 0.15, 0.1, 0.05, 0), 1.0)
}

func diversificationActivityRatio(sum *analytics.Summary) float64 {
	total := len(sum.Profile.Transfers)
	if total == 0 {
		return 0
	}
	return float64(sum.TransferCountOfTypes(diversificationTransferTypes...)) / float64(total)
}

func diversificationNeedScore(sum *analytics.Summary, ratio float64) float64 {
	if len(sum.Profile.Transfers) == 0 {
		return 0
	}
	switch {
	case ratio >= 0.4:
		return 1.0
	case ratio >= 0.3:
		return 0.8
	case ratio >= 0.2:
		return 0.6
	case ratio >= 0.1:
		return 0.4
	default:
		return 0.1
	}
}

func longTermBehaviorScore(sum *analytics.Summary) float64 {
	count := sum.TransferCountOfTypes(longTermTransferTypes...)
	switch {
	case count >= 5:
		return 1.0
	case count >= 3:
		return 0.8
	case count >= 2:
		return 0.6
	case count >= 1:
		return 0.4
	default:
		return 0.1
	}
}
