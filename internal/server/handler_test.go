package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zharashanus/push-analytic/internal/models"
	"github.com/zharashanus/push-analytic/internal/server"
	"github.com/zharashanus/push-analytic/internal/service"
)

const validBody = `{
	"client_code": 42,
	"name": "Рамазан",
	"status": "Зарплатный клиент",
	"avg_monthly_balance_KZT": 240000,
	"transactions": [
		{"date": "2025-08-10", "category": "Такси", "amount": 27400, "currency": "KZT"},
		{"date": "2025-08-12", "category": "Продукты питания", "amount": 44000, "currency": "KZT"}
	],
	"transfers": [
		{"date": "2025-08-01", "type": "salary_in", "direction": "in", "amount": 320000, "currency": "KZT"}
	]
}`

func newTestRouter() http.Handler {
	return server.NewRouter(service.NewAnalyzer(90, nil, nil, nil, 0), nil)
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/health", nil)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "healthy" || body["service"] != "push_analytics" {
		t.Errorf("unexpected health payload: %v", body)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/analyze", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.ClientCode != 42 {
		t.Errorf("expected client code 42, got %d", resp.ClientCode)
	}
	if resp.Product == "" || resp.PushNotification == "" {
		t.Errorf("incomplete response: %+v", resp)
	}
}

func TestAnalyzeAllEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/analyze/all", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.AnalyzeAllResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(resp.Recommendations) != 10 {
		t.Fatalf("expected 10 recommendations, got %d", len(resp.Recommendations))
	}
	for i := 1; i < len(resp.Recommendations); i++ {
		if resp.Recommendations[i].Score > resp.Recommendations[i-1].Score {
			t.Errorf("recommendations not sorted at index %d", i)
		}
	}
}

func TestAnalyzeRejectsMissingFields(t *testing.T) {
	body := `{"client_code": 42, "status": "Студент", "avg_monthly_balance_KZT": 1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !strings.Contains(resp["error"], "name") {
		t.Errorf("expected the missing field in the error, got %q", resp["error"])
	}
}

func TestAnalyzeRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	return nil, errors.New("catalog unavailable")
}

func (failingAnalyzer) AnalyzeAll(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeAllResponse, error) {
	return nil, errors.New("catalog unavailable")
}

func TestAnalyzeInternalErrorIsOpaque(t *testing.T) {
	router := server.NewRouter(failingAnalyzer{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/analyze", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "catalog unavailable") {
		t.Errorf("internal details leaked to the client: %s", rec.Body.String())
	}
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	limiter := server.NewRateLimiter(2, time.Minute)
	router := server.NewRouter(service.NewAnalyzer(90, nil, nil, nil, 0), limiter)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	// A different client still has its own budget.
	other := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/health", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a different ip, got %d", rec.Code)
	}
}
