package products

import (
	"strings"

	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// PremiumCardScenario scores the premium card: elevated cashback for
// high-balance clients with premium-category spending.
type PremiumCardScenario struct{}

const premiumCategoriesCashback = 0.04

var premiumCategories = []string{"Кафе и рестораны", "Косметика и Парфюмерия", "Подарки", "Ювелирные украшения"}

var incomeTransferTypes = []string{"salary_in", "stipend_in", "family_in", "card_in"}

func (PremiumCardScenario) Product() string { return PremiumCard }

func (PremiumCardScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	balanceScore := premiumBalanceScore(balance)
	if balanceScore > 0.7 {
		reasons = append(reasons, "Высокий баланс")
	}
	statusScore := statusContains(p.Status, 1.0, 0.7, 0.4, 0.2, 0.5)

	premiumAmount := sum.CategoryAmount(premiumCategories...)
	premiumRatio := sum.CategoryShare(premiumCategories...)
	spendingScore := premiumSpendingScore(sum, premiumRatio)
	if spendingScore > 0.7 {
		reasons = append(reasons, "Активные траты в премиальных категориях")
	}

	incomeScore := incomePatternScore(sum)
	activityScore := operationActivityScore(sum)

	score := balanceScore*0.4 + statusScore*0.2 + spendingScore*0.2 + incomeScore*0.1 + activityScore*0.1
	score = scoring.Clamp(score)

	if balance < 500000 {
		score *= 0.3
	} else if balance < 800000 {
		score *= 0.6
	}
	if strings.Contains(strings.ToLower(p.Status), "премиальный") {
		score = capped(score*1.2, 1.0)
		reasons = append(reasons, "Премиальный статус клиента")
	}

	benefit := balance*0.02 + premiumAmount*premiumCategoriesCashback
	if balance >= 6000000 {
		benefit *= 1.5
	} else if balance >= 1000000 {
		benefit *= 1.25
	}
	benefit *= score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
		Metrics: map[string]float64{
			MetricPotentialCashback: premiumAmount * premiumCategoriesCashback,
		},
	}
}

func premiumBalanceScore(balance float64) float64 {
	switch {
	case balance >= 6000000:
		return 1.0
	case balance >= 1000000:
		return 0.9
	case balance >= 800000:
		return 0.8
	case balance >= 500000:
		return 0.6
	case balance >= 200000:
		return 0.3
	default:
		return 0.1
	}
}

func premiumSpendingScore(sum *analytics.Summary, ratio float64) float64 {
	if sum.TotalSpending == 0 {
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
		return 0.2
	}
}

// incomePatternScore rewards large, regular inflows with an extra bump for a
// salary stream.
func incomePatternScore(sum *analytics.Summary) float64 {
	incomeTypes := make(map[string]struct{}, len(incomeTransferTypes))
	for _, t := range incomeTransferTypes {
		incomeTypes[t] = struct{}{}
	}

	var total, salary float64
	var count int
	for _, tr := range sum.Profile.Transfers {
		if tr.Direction != "in" {
			continue
		}
		if _, ok := incomeTypes[strings.ToLower(tr.Type)]; !ok {
			continue
		}
		total += tr.Amount
		count++
		if strings.ToLower(tr.Type) == "salary_in" {
			salary += tr.Amount
		}
	}
	if total == 0 {
		return 0
	}

	avg := total / float64(count)
	var score float64
	switch {
	case avg >= 500000:
		score += 0.5
	case avg >= 200000:
		score += 0.3
	case avg >= 100000:
		score += 0.1
	}
	switch {
	case count >= 3:
		score += 0.3
	case count >= 1:
		score += 0.1
	}
	if salary > 0 {
		score += 0.2
	}
	return capped(score, 1.0)
}

func operationActivityScore(sum *analytics.Summary) float64 {
	monthlyTx := sum.MonthlyFrequency(len(sum.Profile.Transactions))
	monthlyTr := sum.MonthlyFrequency(len(sum.Profile.Transfers))
	switch {
	case monthlyTx >= 20 && monthlyTr >= 10:
		return 1.0
	case monthlyTx >= 15 && monthlyTr >= 5:
		return 0.8
	case monthlyTx >= 10 && monthlyTr >= 3:
		return 0.6
	case monthlyTx >= 5:
		return 0.4
	default:
		return 0.2
	}
}
