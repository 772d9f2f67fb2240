package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultCity is assumed when the request omits the client's city.
	DefaultCity = "Алматы"
	// DefaultAge is assumed when the request omits the client's age.
	DefaultAge = 30
	// DefaultCurrency is assumed for amounts without an explicit currency code.
	DefaultCurrency = "KZT"
)

// Date is a calendar date in YYYY-MM-DD wire format.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a quoted YYYY-MM-DD date. An empty or null value
// yields the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = parsed
	return nil
}

// MarshalJSON renders the date in YYYY-MM-DD wire format.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// MonthKey returns the YYYY-MM grouping key, empty for the zero date.
func (d Date) MonthKey() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01")
}

// Transaction is a single card purchase in the client's history.
type Transaction struct {
	Date     Date    `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

// Transfer is a single money movement (salary, fx, deposit top-up, ...).
type Transfer struct {
	Date      Date    `json:"date"`
	Type      string  `json:"type"`
	Direction string  `json:"direction"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency,omitempty"`
}

// ClientProfile is the scoring input: identity plus request-scoped history.
// It exists only for the duration of a single analyze call.
type ClientProfile struct {
	ClientCode        int64         `json:"client_code"`
	Name              string        `json:"name"`
	Status            string        `json:"status"`
	AvgMonthlyBalance float64       `json:"avg_monthly_balance_KZT"`
	City              string        `json:"city"`
	Age               int           `json:"age"`
	Transactions      []Transaction `json:"transactions"`
	Transfers         []Transfer    `json:"transfers"`
}

// AnalyzeRequest mirrors the wire format of the analyze endpoints. Required
// fields are pointers so that absent keys can be told apart from zero values.
type AnalyzeRequest struct {
	ClientCode        *int64        `json:"client_code"`
	Name              *string       `json:"name"`
	Status            *string       `json:"status"`
	AvgMonthlyBalance *float64      `json:"avg_monthly_balance_KZT"`
	City              *string       `json:"city"`
	Age               *int          `json:"age"`
	Transactions      []Transaction `json:"transactions"`
	Transfers         []Transfer    `json:"transfers"`
}

// Validate checks that all required identity fields are present and that no
// amount is negative.
func (r *AnalyzeRequest) Validate() error {
	if r.ClientCode == nil {
		return fmt.Errorf("%w: client_code", ErrMissingField)
	}
	if r.Name == nil || *r.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if r.Status == nil || *r.Status == "" {
		return fmt.Errorf("%w: status", ErrMissingField)
	}
	if r.AvgMonthlyBalance == nil {
		return fmt.Errorf("%w: avg_monthly_balance_KZT", ErrMissingField)
	}
	if *r.AvgMonthlyBalance < 0 {
		return fmt.Errorf("%w: avg_monthly_balance_KZT", ErrNegativeAmount)
	}
	for i, tx := range r.Transactions {
		if tx.Amount < 0 {
			return fmt.Errorf("%w: transactions[%d]", ErrNegativeAmount, i)
		}
	}
	for i, tr := range r.Transfers {
		if tr.Amount < 0 {
			return fmt.Errorf("%w: transfers[%d]", ErrNegativeAmount, i)
		}
	}
	return nil
}

// Profile converts a validated request into a ClientProfile with defaults
// applied for the optional fields.
func (r *AnalyzeRequest) Profile() *ClientProfile {
	p := &ClientProfile{
		ClientCode:        *r.ClientCode,
		Name:              *r.Name,
		Status:            *r.Status,
		AvgMonthlyBalance: *r.AvgMonthlyBalance,
		City:              DefaultCity,
		Age:               DefaultAge,
		Transactions:      make([]Transaction, len(r.Transactions)),
		Transfers:         make([]Transfer, len(r.Transfers)),
	}
	if r.City != nil && *r.City != "" {
		p.City = *r.City
	}
	if r.Age != nil && *r.Age > 0 {
		p.Age = *r.Age
	}
	for i, tx := range r.Transactions {
		if tx.Currency == "" {
			tx.Currency = DefaultCurrency
		}
		p.Transactions[i] = tx
	}
	for i, tr := range r.Transfers {
		if tr.Currency == "" {
			tr.Currency = DefaultCurrency
		}
		p.Transfers[i] = tr
	}
	return p
}
