package products

import (
	"sort"

	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// CreditCardScenario scores the credit card: cashback in favourite
// categories plus online services, backed by installment options.
type CreditCardScenario struct{}

const onlineCashbackRate = 0.10

var popularCategories = []string{
	"Кафе и рестораны", "Продукты питания", "Одежда и обувь",
	"Развлечения", "Кино", "Играем дома", "Смотрим дома",
	"Косметика и Парфюмерия", "Спорт", "Медицина", "Авто", "АЗС",
	"Такси", "Отели", "Путешествия", "Подарки", "Ювелирные украшения",
}

var onlineCategories = []string{"Кино", "Играем дома", "Смотрим дома"}

func (CreditCardScenario) Product() string { return CreditCard }

func (CreditCardScenario) Evaluate(sum *analytics.Summary) scoring.Result {
	p := sum.Profile
	balance := p.AvgMonthlyBalance
	reasons := []string{}

	stabilityScore := creditStabilityScore(balance)

	categoryScore := spendingCategoriesScore(sum)
	if categoryScore > 0.7 {
		reasons = append(reasons, "Активные траты в популярных категориях")
	}

	onlineAmount := sum.CategoryAmount(onlineCategories...)
	onlineRatio := sum.CategoryShare(onlineCategories...)
	onlineScore := onlineSpendingScore(sum, onlineRatio)
	if onlineScore > 0.6 {
		reasons = append(reasons, "Высокие траты на онлайн-сервисы")
	}

	regularityScore := spendingRegularityScore(sum)
	creditScore := creditExperienceScore(sum)

	score := stabilityScore*0.25 + categoryScore*0.35 + onlineScore*0.2 + regularityScore*0.15 + creditScore*0.05
	score = scoring.Clamp(score)

	if balance < 100000 {
		score *= 0.3
	} else if balance < 200000 {
		score *= 0.6
	}
	if sum.TotalSpending > 0 && onlineRatio >= 0.3 {
		score = capped(score*1.15, 1.0)
		reasons = append(reasons, "Бонус за высокие онлайн траты")
	}

	benefit := (balance*0.05 + onlineAmount*onlineCashbackRate + balance*0.02) * score

	return scoring.Result{
		Score:           score,
		ExpectedBenefit: benefit,
		Reasons:         reasons,
		Metrics: map[string]float64{
			MetricOnlineAmount:      onlineAmount,
			MetricPotentialCashback: onlineAmount * onlineCashbackRate,
		},
	}
}

func creditStabilityScore(balance float64) float64 {
	switch {
	case balance >= 1000000:
		return 1.0
	case balance >= 500000:
		return 0.8
	case balance >= 300000:
		return 0.6
	case balance >= 200000:
		return 0.4
	case balance >= 100000:
		return 0.2
	default:
		return 0.1
	}
}

// spendingCategoriesScore blends the popular-category share, the variety of
// categories and the concentration in the top three, since the card lets the
// client pick three favourite categories.
func spendingCategoriesScore(sum *analytics.Summary) float64 {
	if sum.TotalSpending == 0 {
		return 0
	}

	popularAmounts := make([]float64, 0, len(popularCategories))
	var popularAmount float64
	var usedCategories int
	for _, c := range popularCategories {
		amount := sum.CategoryAmounts[c]
		if amount <= 0 {
			continue
		}
		popularAmount += amount
		usedCategories++
		popularAmounts = append(popularAmounts, amount)
	}

	ratio := popularAmount / sum.TotalSpending
	diversity := float64(usedCategories) / float64(len(popularCategories))

	var concentration float64
	if popularAmount > 0 {
		sort.Sort(sort.Reverse(sort.Float64Slice(popularAmounts)))
		var top3 float64
		for i, amount := range popularAmounts {
			if i == 3 {
				break
			}
			top3 += amount
		}
		concentration = top3 / popularAmount
	}

	ratioScore := capped(ratio*2, 1.0)
	diversityScore := capped(diversity*2, 1.0)
	concentrationScore := capped(concentration*1.5, 1.0)

	return (ratioScore + diversityScore + concentrationScore) / 3
}

func onlineSpendingScore(sum *analytics.Summary, ratio float64) float64 {
	if sum.TotalSpending == 0 {
		return 0
	}
	switch {
	case ratio >= 0.3:
		return 1.0
	case ratio >= 0.2:
		return 0.8
	case ratio >= 0.15:
		return 0.6
	case ratio >= 0.1:
		return 0.4
	default:
		return 0.2
	}
}

// spendingRegularityScore measures how many spending days carry at least
// half of the average daily volume.
func spendingRegularityScore(sum *analytics.Summary) float64 {
	amounts := sum.DailySpendingAmounts()
	if len(amounts) == 0 {
		return 0
	}

	var total float64
	for _, amount := range amounts {
		total += amount
	}
	avg := total / float64(len(amounts))

	var active int
	for _, amount := range amounts {
		if amount >= avg*0.5 {
			active++
		}
	}
	ratio := float64(active) / float64(len(amounts))
	switch {
	case ratio >= 0.8:
		return 1.0
	case ratio >= 0.6:
		return 0.7
	case ratio >= 0.4:
		return 0.5
	default:
		return 0.2
	}
}

func creditExperienceScore(sum *analytics.Summary) float64 {
	if len(sum.Profile.Transfers) == 0 {
		return 0
	}
	count := sum.TransferCountOfTypes(creditTransferTypes...)
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
