package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func validRequest() *AnalyzeRequest {
	code := int64(1)
	name := "Рамазан"
	status := "Зарплатный клиент"
	balance := 240000.0
	return &AnalyzeRequest{
		ClientCode:        &code,
		Name:              &name,
		Status:            &status,
		AvgMonthlyBalance: &balance,
	}
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestValidateMissingClientCode(t *testing.T) {
	req := validRequest()
	req.ClientCode = nil
	if err := req.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestValidateMissingName(t *testing.T) {
	req := validRequest()
	empty := ""
	req.Name = &empty
	if err := req.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestValidateMissingBalance(t *testing.T) {
	req := validRequest()
	req.AvgMonthlyBalance = nil
	if err := req.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestValidateNegativeTransactionAmount(t *testing.T) {
	req := validRequest()
	req.Transactions = []Transaction{{Category: "Такси", Amount: -100}}
	if err := req.Validate(); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestProfileAppliesDefaults(t *testing.T) {
	req := validRequest()
	req.Transactions = []Transaction{{Category: "Такси", Amount: 27400}}

	p := req.Profile()

	if p.City != DefaultCity {
		t.Errorf("expected default city %q, got %q", DefaultCity, p.City)
	}
	if p.Age != DefaultAge {
		t.Errorf("expected default age %d, got %d", DefaultAge, p.Age)
	}
	if p.Transactions[0].Currency != DefaultCurrency {
		t.Errorf("expected default currency %q, got %q", DefaultCurrency, p.Transactions[0].Currency)
	}
}

func TestProfileKeepsExplicitValues(t *testing.T) {
	req := validRequest()
	city := "Астана"
	age := 42
	req.City = &city
	req.Age = &age

	p := req.Profile()

	if p.City != "Астана" || p.Age != 42 {
		t.Errorf("explicit values lost: city=%q age=%d", p.City, p.Age)
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	var tx Transaction
	body := `{"date": "2025-07-14", "category": "Такси", "amount": 27400}`
	if err := json.Unmarshal([]byte(body), &tx); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if tx.Date.MonthKey() != "2025-07" {
		t.Errorf("expected month key 2025-07, got %q", tx.Date.MonthKey())
	}
}

func TestDateUnmarshalJSONEmpty(t *testing.T) {
	var tx Transaction
	body := `{"date": "", "category": "Такси", "amount": 100}`
	if err := json.Unmarshal([]byte(body), &tx); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !tx.Date.IsZero() {
		t.Errorf("expected zero date for empty string")
	}
}

func TestDateUnmarshalJSONInvalid(t *testing.T) {
	var tx Transaction
	body := `{"date": "14.07.2025", "category": "Такси", "amount": 100}`
	if err := json.Unmarshal([]byte(body), &tx); err == nil {
		t.Errorf("expected error for malformed date")
	}
}
