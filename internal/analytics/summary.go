package analytics

import (
	"time"

	"github.com/zharashanus/push-analytic/internal/models"
)

// Summary holds the aggregates derived from one client's request-scoped
// history. It is computed once per analyze call and shared by all product
// scenarios.
type Summary struct {
	Profile    *models.ClientProfile
	PeriodDays int

	TotalSpending   float64
	CategoryAmounts map[string]float64
	CategoryCounts  map[string]int

	TotalTransferAmount float64
	TransferTypeCounts  map[string]int
	TransferTypeAmounts map[string]float64
	InflowTotal         float64
	OutflowTotal        float64

	// LatestDate is the most recent date across transactions and transfers.
	// Messages derive their month from it so identical input always renders
	// identically.
	LatestDate time.Time

	transactionMonths map[string]struct{}
	transferMonths    map[string]struct{}
}

// Summarize aggregates the profile's history. periodDays scales
// per-month frequencies; values below 1 fall back to 90.
func Summarize(p *models.ClientProfile, periodDays int) *Summary {
	if periodDays < 1 {
		periodDays = 90
	}
	s := &Summary{
		Profile:             p,
		PeriodDays:          periodDays,
		CategoryAmounts:     make(map[string]float64),
		CategoryCounts:      make(map[string]int),
		TransferTypeCounts:  make(map[string]int),
		TransferTypeAmounts: make(map[string]float64),
		transactionMonths:   make(map[string]struct{}),
		transferMonths:      make(map[string]struct{}),
	}

	for _, tx := range p.Transactions {
		s.TotalSpending += tx.Amount
		s.CategoryAmounts[tx.Category] += tx.Amount
		s.CategoryCounts[tx.Category]++
		if key := tx.Date.MonthKey(); key != "" {
			s.transactionMonths[key] = struct{}{}
		}
		if tx.Date.After(s.LatestDate) {
			s.LatestDate = tx.Date.Time
		}
	}

	for _, tr := range p.Transfers {
		s.TotalTransferAmount += tr.Amount
		s.TransferTypeCounts[tr.Type]++
		s.TransferTypeAmounts[tr.Type] += tr.Amount
		switch tr.Direction {
		case "in":
			s.InflowTotal += tr.Amount
		case "out":
			s.OutflowTotal += tr.Amount
		}
		if key := tr.Date.MonthKey(); key != "" {
			s.transferMonths[key] = struct{}{}
		}
		if tr.Date.After(s.LatestDate) {
			s.LatestDate = tr.Date.Time
		}
	}

	return s
}

// CategoryAmount returns the total spent across the given categories.
func (s *Summary) CategoryAmount(categories ...string) float64 {
	var total float64
	for _, c := range categories {
		total += s.CategoryAmounts[c]
	}
	return total
}

// CategoryCount returns the number of transactions across the given categories.
func (s *Summary) CategoryCount(categories ...string) int {
	var total int
	for _, c := range categories {
		total += s.CategoryCounts[c]
	}
	return total
}

// CategoryShare returns the fraction of total spending that falls into the
// given categories, 0 when there is no spending at all.
func (s *Summary) CategoryShare(categories ...string) float64 {
	if s.TotalSpending == 0 {
		return 0
	}
	return s.CategoryAmount(categories...) / s.TotalSpending
}

// TransactionMonthCount returns the number of distinct months covered by the
// transaction history, never less than 1.
func (s *Summary) TransactionMonthCount() int {
	if len(s.transactionMonths) == 0 {
		return 1
	}
	return len(s.transactionMonths)
}

// TransferMonthCount returns the number of distinct months covered by the
// transfer history, never less than 1.
func (s *Summary) TransferMonthCount() int {
	if len(s.transferMonths) == 0 {
		return 1
	}
	return len(s.transferMonths)
}

// MonthsWithCategory returns the number of distinct months that contain at
// least one transaction in the given categories.
func (s *Summary) MonthsWithCategory(categories ...string) int {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	months := make(map[string]struct{})
	for _, tx := range s.Profile.Transactions {
		if _, ok := set[tx.Category]; !ok {
			continue
		}
		if key := tx.Date.MonthKey(); key != "" {
			months[key] = struct{}{}
		}
	}
	return len(months)
}

// TransferCountOfTypes returns the number of transfers matching the given
// type labels.
func (s *Summary) TransferCountOfTypes(types ...string) int {
	var total int
	for _, t := range types {
		total += s.TransferTypeCounts[t]
	}
	return total
}

// TransferAmountOfTypes returns the total amount of transfers matching the
// given type labels.
func (s *Summary) TransferAmountOfTypes(types ...string) float64 {
	var total float64
	for _, t := range types {
		total += s.TransferTypeAmounts[t]
	}
	return total
}

// MonthlyFrequency converts an operation count over the analysis period into
// an operations-per-month rate.
func (s *Summary) MonthlyFrequency(count int) float64 {
	return float64(count) / float64(s.PeriodDays) * 30
}

// DailySpendingAmounts groups transaction amounts by calendar date and
// returns the per-day totals. Undated transactions are skipped.
func (s *Summary) DailySpendingAmounts() []float64 {
	daily := make(map[string]float64)
	for _, tx := range s.Profile.Transactions {
		if tx.Date.IsZero() {
			continue
		}
		daily[tx.Date.Format("2006-01-02")] += tx.Amount
	}
	amounts := make([]float64, 0, len(daily))
	for _, v := range daily {
		amounts = append(amounts, v)
	}
	return amounts
}

// ForeignCurrency reports whether the code denotes a non-tenge currency.
func ForeignCurrency(code string) bool {
	return code != "" && code != models.DefaultCurrency
}
