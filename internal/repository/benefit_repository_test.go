package repository_test

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zharashanus/push-analytic/internal/db"
	"github.com/zharashanus/push-analytic/internal/models"
	"github.com/zharashanus/push-analytic/internal/repository"
)

// TestBenefitRepositoryIntegration spins up a PostgreSQL container, creates
// the schema and verifies the save and read paths end to end.
func TestBenefitRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}()

	dbURL, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := db.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to create database pool: %v", err)
	}
	defer pool.Close()

	repo := repository.NewBenefitRepository(pool.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	profile := &models.ClientProfile{
		ClientCode:        42,
		Name:              "Рамазан",
		Status:            "Зарплатный клиент",
		AvgMonthlyBalance: 240000,
		City:              "Алматы",
		Age:               30,
	}
	recs := []models.Recommendation{
		{Product: "Карта для путешествий", PushNotification: "Рамазан, карта ждёт вас.", Score: 0.625, ExpectedBenefit: 1096, Priority: models.PriorityMedium},
		{Product: "Кредитная карта", PushNotification: "Рамазан, карта с кешбэком.", Score: 0.55, ExpectedBenefit: 9000, Priority: models.PriorityMedium},
	}

	if err := repo.SaveRecommendations(ctx, profile, recs); err != nil {
		t.Fatalf("failed to save recommendations: %v", err)
	}

	// Saving again must upsert the client row, not conflict on it.
	profile.AvgMonthlyBalance = 260000
	if err := repo.SaveRecommendations(ctx, profile, recs[:1]); err != nil {
		t.Fatalf("failed to save recommendations twice: %v", err)
	}

	got, err := repo.LatestRecommendations(ctx, profile.ClientCode, 10)
	if err != nil {
		t.Fatalf("failed to read recommendations: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 stored recommendations, got %d", len(got))
	}
	if got[0].Product != "Карта для путешествий" {
		t.Errorf("expected the latest best product first, got %q", got[0].Product)
	}

	var balance float64
	err = pool.QueryRow(ctx, "SELECT avg_monthly_balance_kzt FROM clients WHERE client_code = $1", profile.ClientCode).Scan(&balance)
	if err != nil {
		t.Fatalf("failed to read client row: %v", err)
	}
	if balance != 260000 {
		t.Errorf("expected upserted balance 260000, got %f", balance)
	}
}
