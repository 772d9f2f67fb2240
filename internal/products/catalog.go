package products

import (
	"strings"

	"github.com/zharashanus/push-analytic/internal/scoring"
)

// Catalog product names as they appear on the wire.
const (
	TravelCard           = "Карта для путешествий"
	PremiumCard          = "Премиальная карта"
	CreditCard           = "Кредитная карта"
	CurrencyExchange     = "Обмен валют"
	MultiCurrencyDeposit = "Депозит Мультивалютный"
	SavingsDeposit       = "Депозит Сберегательный"
	AccumulationDeposit  = "Депозит Накопительный"
	Investments          = "Инвестиции"
	GoldBars             = "Золотые слитки"
	CashCredit           = "Кредит наличными"
)

// Metric keys passed from scenarios to the notification generator.
const (
	MetricTripCount         = "trip_count"
	MetricTravelAmount      = "travel_amount"
	MetricOnlineAmount      = "online_amount"
	MetricFXAmount          = "fx_amount"
	MetricPotentialCashback = "potential_cashback"
	MetricPotentialSavings  = "potential_savings"
)

// Transfer type groups shared across scenarios.
var (
	savingsTransferTypes = []string{"deposit_topup_out", "deposit_fx_topup_out", "invest_in"}
	fxTransferTypes      = []string{"fx_buy", "fx_sell", "deposit_fx_topup_out", "deposit_fx_withdraw_in"}
	creditTransferTypes  = []string{"loan_payment_out", "cc_repayment_out", "installment_payment_out"}
)

// Canonical client statuses used by scoring rules.
const (
	statusPremium  = "Премиальный клиент"
	statusSalaried = "Зарплатный клиент"
	statusStandard = "Стандартный клиент"
	statusStudent  = "Студент"
)

// Catalog returns all product scenarios in catalog order. The order is the
// tie-break for equal scores, so it must stay stable.
func Catalog() []scoring.Scenario {
	return []scoring.Scenario{
		TravelCardScenario{},
		PremiumCardScenario{},
		CreditCardScenario{},
		CurrencyExchangeScenario{},
		MultiCurrencyDepositScenario{},
		SavingsDepositScenario{},
		AccumulationDepositScenario{},
		InvestmentsScenario{},
		GoldBarsScenario{},
		CashCreditScenario{},
	}
}

// basicBalanceScore is the shared balance band used where a scenario has no
// product-specific bands.
func basicBalanceScore(balance float64) float64 {
	switch {
	case balance < 100000:
		return 0.1
	case balance < 500000:
		return 0.3
	case balance < 1000000:
		return 0.6
	case balance < 3000000:
		return 0.8
	default:
		return 1.0
	}
}

// knownStatus reports whether the status is one of the canonical tiers.
func knownStatus(status string) bool {
	switch status {
	case statusPremium, statusSalaried, statusStandard, statusStudent:
		return true
	}
	return false
}

// statusContains matches the status case-insensitively by keyword and maps
// it onto the given tier values.
func statusContains(status string, premium, salaried, standard, student, other float64) float64 {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "премиальный"):
		return premium
	case strings.Contains(s, "зарплатный"):
		return salaried
	case strings.Contains(s, "стандартный"):
		return standard
	case strings.Contains(s, "студент"):
		return student
	default:
		return other
	}
}

// statusExact maps a canonical status onto the given tier values.
func statusExact(status string, premium, salaried, standard, student, other float64) float64 {
	switch status {
	case statusPremium:
		return premium
	case statusSalaried:
		return salaried
	case statusStandard:
		return standard
	case statusStudent:
		return student
	default:
		return other
	}
}

func capped(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
