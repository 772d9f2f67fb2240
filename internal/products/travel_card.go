package products

import (
	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// TravelCardScenario scores the travel card: 4% cashback on taxi, hotels
// and travel spending.
type TravelCardScenario struct{}

const travelCashbackRate = 0.04

var travelCategories = []string{"Такси", "Отели", "Путешествия"}

func (TravelCardScenario) Product() string { return TravelCard }

func (TravelCardScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	reasons := []string{}

	statusScore := statusContains(p.Status, 1.0, 0.8, 0.6, 0.4, 0.5)
	baseScore := basicBalanceScore(p.AvgMonthlyBalance)

	travelAmount := sum.CategoryAmount(travelCategories...)
	travelRatio := sum.CategoryShare(travelCategories...)
	tripCount := sum.CategoryCount(travelCategories...)
	travelScore := travelSpendingScore(sum, travelRatio, travelAmount)
	if travelScore > 0.3 {
		reasons = append(reasons, "Активные траты на путешествия и транспорт")
	}

	regularityScore := travelRegularityScore(sum)

	score := statusScore*0.2 + baseScore*0.25 + travelScore*0.4 + regularityScore*0.15
	score = scoring.Clamp(score)

	if travelScore < 0.1 {
		score *= 0.3
		reasons = append(reasons, "Низкая активность в путешествиях")
	}
	if travelAmount > 100000 {
		score = capped(score*1.2, 1.0)
		reasons = append(reasons, "Высокие траты на путешествия")
	}

	cashback := travelAmount * travelCashbackRate

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: cashback,
		Reasons:         reasons,
		Metrics: map[string]float64{
			MetricTripCount:         float64(tripCount),
			MetricTravelAmount:      travelAmount,
			MetricPotentialCashback: cashback,
		},
	}
}

// travelSpendingScore combines the relative share and the absolute volume of
// travel spending: either signal alone is enough for a mid-tier score.
func travelSpendingScore(sum *analytics.Summary, ratio, amount float64) float64 {
	if sum.TotalSpending == 0 {
		return 0
	}
	const (
		threshold = 0.12
		minAmount = 50000
	)
	switch {
	case ratio >= threshold && amount >= minAmount:
		return 1.0
	case ratio >= threshold*0.8 && amount >= minAmount*0.8:
		return 0.8
	case ratio >= threshold*0.5 || amount >= minAmount*0.5:
		return 0.6
	case ratio >= threshold*0.2 || amount >= minAmount*0.2:
		return 0.3
	default:
		return 0.1
	}
}

func travelRegularityScore(sum *analytics.Summary) float64 {
	if len(sum.Profile.Transactions) == 0 {
		return 0
	}
	ratio := float64(sum.MonthsWithCategory(travelCategories...)) / float64(sum.TransactionMonthCount())
	switch {
	case ratio >= 0.8:
		return 1.0
	case ratio >= 0.5:
		return 0.7
	case ratio >= 0.3:
		return 0.4
	default:
		return 0.1
	}
}
