package products

import (
	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/models"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// CurrencyExchangeScenario scores the in-app currency exchange: favourable
// rate without commission for clients with regular fx activity.
type CurrencyExchangeScenario struct{}

const fxSavingsRate = 0.01

func (CurrencyExchangeScenario) Product() string { return CurrencyExchange }

func (CurrencyExchangeScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	stabilityScore := fxStabilityScore(balance)

	fxAmount, fxCount := fxTransferStats(sum)
	var fxRatio float64
	if sum.TotalTransferAmount > 0 {
		fxRatio = fxAmount / sum.TotalTransferAmount
	}
	operationsScore := fxOperationsScore(sum, fxRatio)
	if operationsScore > 0.7 {
		reasons = append(reasons, "Активные валютные операции")
	}

	regularityScore := fxRegularityScore(sum)
	amountScore := fxAmountScore(fxAmount, fxCount)

	score := stabilityScore*0.2 + operationsScore*0.5 + regularityScore*0.2 + amountScore*0.1
	score = scoring.Clamp(score)

	if balance < 50000 {
		score *= 0.3
	} else if balance < 100000 {
		score *= 0.6
	}
	if fxRatio >= 0.1 {
		score = capped(score*1.2, 1.0)
		reasons = append(reasons, "Бонус за высокую валютную активность")
	}

	savings := fxAmount * fxSavingsRate
	benefit := (balance*0.005 + savings) * score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
		Metrics: map[string]float64{
			MetricFXAmount:         fxAmount,
			MetricPotentialSavings: savings,
		},
	}
}

// isFXTransfer treats both the dedicated fx types and any non-tenge transfer
// as currency activity.
func isFXTransfer(tr models.Transfer) bool {
	for _, t := range fxTransferTypes {
		if tr.Type == t {
			return true
		}
	}
	return analytics.ForeignCurrency(tr.Currency)
}

func fxTransferStats(sum *analytics.Summary) (amount float64, count int) {
	for _, tr := range sum.Profile.Transfers {
		if isFXTransfer(tr) {
			amount += tr.Amount
			count++
		}
	}
	return amount, count
}

func fxStabilityScore(balance float64) float64 {
	switch {
	case balance >= 1000000:
		return 1.0
	case balance >= 500000:
		return 0.8
	case balance >= 200000:
		return 0.6
	case balance >= 100000:
		return 0.4
	case balance >= 50000:
		return 0.2
	default:
		return 0.1
	}
}

func fxOperationsScore(sum *analytics.Summary, fxRatio float64) float64 {
	if len(sum.Profile.Transfers) == 0 || sum.TotalTransferAmount == 0 {
		return 0
	}
	switch {
	case fxRatio >= 0.2:
		return 1.0
	case fxRatio >= 0.1:
		return 0.8
	case fxRatio >= 0.05:
		return 0.6
	case fxRatio >= 0.02:
		return 0.4
	default:
		return 0.2
	}
}

func fxRegularityScore(sum *analytics.Summary) float64 {
	if len(sum.Profile.Transfers) == 0 {
		return 0
	}
	months := make(map[string]struct{})
	for _, tr := range sum.Profile.Transfers {
		if !isFXTransfer(tr) {
			continue
		}
		if key := tr.Date.MonthKey(); key != "" {
			months[key] = struct{}{}
		}
	}
	ratio := float64(len(months)) / float64(sum.TransferMonthCount())
	switch {
	case ratio >= 0.8:
		return 1.0
	case ratio >= 0.6:
		return 0.8
	case ratio >= 0.4:
		return 0.6
	case ratio >= 0.2:
		return 0.4
	default:
		return 0.2
	}
}

func fxAmountScore(fxAmount float64, fxCount int) float64 {
	if fxCount == 0 {
		return 0
	}
	avg := fxAmount / float64(fxCount)
	switch {
	case avg >= 500000:
		return 1.0
	case avg >= 200000:
		return 0.8
	case avg >= 100000:
		return 0.6
	case avg >= 50000:
		return 0.4
	default:
		return 0.2
	}
}
