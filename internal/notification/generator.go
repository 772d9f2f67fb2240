package notification

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/products"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// Push length bounds from the tone-of-voice guide.
const (
	maxPushLength = 220
	minPushLength = 50
)

// cashLoanLimit is the advertised ceiling for the cash loan push.
const cashLoanLimit = 2000000

// Generator builds personalized push texts: addressed by name, grounded in
// the client's own numbers, one call to action, no pressure.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Build renders the push for a scored product. Unknown products get the
// generic text so a new catalog entry never breaks the response.
func (g *Generator) Build(product string, sum *analytics.Summary, res scoring.Result) string {
	name := sum.Profile.Name
	if name == "" {
		name = "Клиент"
	}
	month := MonthPrepositional(sum.LatestDate)
	balance := FormatAmount(sum.Profile.AvgMonthlyBalance)

	var msg string
	switch product {
	case products.TravelCard:
		msg = travelMessage(name, month, res)
	case products.PremiumCard:
		msg = fmt.Sprintf("%s, у вас стабильно крупный остаток %s ₸ и траты в ресторанах. Премиальная карта даст больше кешбэка и бесплатные снятия. Оформить карту.", name, balance)
	case products.CreditCard:
		msg = creditCardMessage(name, sum, res)
	case products.CurrencyExchange:
		msg = currencyExchangeMessage(name, month, sum, res)
	case products.MultiCurrencyDeposit:
		msg = fmt.Sprintf("%s, вы храните %s ₸ на карте. Мультивалютный вклад даст 14,5%% годовых и свободный доступ к деньгам. Открыть вклад.", name, balance)
	case products.SavingsDeposit:
		msg = fmt.Sprintf("%s, у вас свободно %s ₸ на карте. Сберегательный вклад под 16,5%% годовых поможет накопить быстрее. Открыть вклад.", name, balance)
	case products.AccumulationDeposit:
		msg = fmt.Sprintf("%s, деньги на карте %s ₸ не приносят дохода. Накопительный вклад под 15,5%% растёт с каждым пополнением. Открыть счёт.", name, balance)
	case products.Investments:
		msg = fmt.Sprintf("%s, вы накопили %s ₸. Инвестиции без комиссий в первый год помогут сохранить и приумножить средства. Узнать подробнее.", name, balance)
	case products.GoldBars:
		msg = fmt.Sprintf("%s, свободные %s ₸ можно вложить в золотые слитки 999,9 пробы. Надёжная защита сбережений в любой момент. Посмотреть в приложении.", name, balance)
	case products.CashCredit:
		msg = fmt.Sprintf("%s, если планируются крупные траты, доступен кредит наличными до %s ₸ без залога и справок. Узнать лимит.", name, FormatAmount(cashLoanLimit))
	default:
		msg = "Для вас доступен новый продукт банка. Узнать подробнее в приложении?"
	}

	return sanitize(msg)
}

func travelMessage(name, month string, res scoring.Result) string {
	amount := res.Metrics[products.MetricTravelAmount]
	if amount <= 0 {
		return fmt.Sprintf("%s, с картой для путешествий 4%% кешбэка возвращаются за такси, отели и поездки. Хотите оформить?", name)
	}
	trips := int(res.Metrics[products.MetricTripCount])
	cashback := res.Metrics[products.MetricPotentialCashback]
	return fmt.Sprintf("%s, в %s у вас %d поездок на такси на %s ₸. С картой для путешествий вернули бы %s ₸ кешбэком. Хотите оформить?",
		name, month, trips, FormatAmount(amount), FormatAmount(cashback))
}

func creditCardMessage(name string, sum *analytics.Summary, res scoring.Result) string {
	online := res.Metrics[products.MetricOnlineAmount]
	if online > 0 {
		cashback := res.Metrics[products.MetricPotentialCashback]
		return fmt.Sprintf("%s, в этом месяце на онлайн-сервисы ушло %s ₸. Кредитная карта вернула бы %s ₸ кешбэком. Открыть карту.",
			name, FormatAmount(online), FormatAmount(cashback))
	}
	if top := topCategories(sum, 3); len(top) == 3 {
		return fmt.Sprintf("%s, ваши топ-категории %s, %s и %s. Кредитная карта вернёт до 10%% именно в них. Оформить карту.",
			name, top[0], top[1], top[2])
	}
	return fmt.Sprintf("%s, кредитная карта вернёт до 10%% кешбэка в любимых категориях. Оформить карту.", name)
}

func currencyExchangeMessage(name, month string, sum *analytics.Summary, res scoring.Result) string {
	amount := res.Metrics[products.MetricFXAmount]
	if amount <= 0 {
		return fmt.Sprintf("%s, в приложении выгодный обмен валют без комиссии, доступен круглосуточно. Настроить обмен.", name)
	}
	return fmt.Sprintf("%s, в %s вы провели операции на %s ₸ в %s. Выгодный обмен в приложении сэкономит на курсе. Настроить обмен.",
		name, month, FormatAmount(amount), dominantForeignCurrency(sum))
}

// topCategories returns up to n spending categories ordered by amount,
// largest first, with an alphabetical tie-break for stable output.
func topCategories(sum *analytics.Summary, n int) []string {
	names := make([]string, 0, len(sum.CategoryAmounts))
	for name := range sum.CategoryAmounts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := sum.CategoryAmounts[names[i]], sum.CategoryAmounts[names[j]]
		if ai != aj {
			return ai > aj
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// dominantForeignCurrency picks the most frequent non-KZT currency across
// the client's history, defaulting to USD.
func dominantForeignCurrency(sum *analytics.Summary) string {
	counts := make(map[string]int)
	for _, tx := range sum.Profile.Transactions {
		if analytics.ForeignCurrency(tx.Currency) {
			counts[tx.Currency]++
		}
	}
	for _, tr := range sum.Profile.Transfers {
		if analytics.ForeignCurrency(tr.Currency) {
			counts[tr.Currency]++
		}
	}

	best := "USD"
	bestCount := 0
	currencies := make([]string, 0, len(counts))
	for c := range counts {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	for _, c := range currencies {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}

// sanitize enforces the tone-of-voice rules: single spacing, at most one
// exclamation mark, length between 50 and 220 characters.
func sanitize(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")

	if marks := strings.Count(msg, "!"); marks > 1 {
		msg = strings.Replace(msg, "!", "", marks-1)
	}

	runes := []rune(msg)
	if len(runes) > maxPushLength {
		return string(runes[:maxPushLength-3]) + "..."
	}
	if len(runes) < minPushLength {
		msg += " Узнать подробнее?"
	}
	return msg
}
