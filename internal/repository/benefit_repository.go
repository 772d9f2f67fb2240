package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zharashanus/push-analytic/internal/models"
)

// BenefitRepository persists analyzed clients and their product
// recommendations in PostgreSQL.
type BenefitRepository struct {
	pool *pgxpool.Pool
}

// NewBenefitRepository creates a new BenefitRepository.
func NewBenefitRepository(pool *pgxpool.Pool) *BenefitRepository {
	return &BenefitRepository{pool: pool}
}

// EnsureSchema creates the tables if they do not exist yet. The service owns
// its schema, so this runs on startup instead of a separate migration step.
func (r *BenefitRepository) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			client_code BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			avg_monthly_balance_kzt DOUBLE PRECISION NOT NULL,
			city TEXT NOT NULL,
			age INT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS product_benefits (
			id UUID PRIMARY KEY,
			client_code BIGINT NOT NULL REFERENCES clients (client_code),
			product TEXT NOT NULL,
			push_notification TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			expected_benefit DOUBLE PRECISION NOT NULL,
			priority TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_product_benefits_client
			ON product_benefits (client_code, created_at)`,
	}
	for _, q := range queries {
		if _, err := r.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveRecommendations upserts the client row and appends one benefit row per
// recommendation, all in a single transaction.
func (r *BenefitRepository) SaveRecommendations(ctx context.Context, profile *models.ClientProfile, recs []models.Recommendation) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	_, err = tx.Exec(ctx, `
		INSERT INTO clients (client_code, name, status, avg_monthly_balance_kzt, city, age, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (client_code) DO UPDATE
		SET name = EXCLUDED.name,
		    status = EXCLUDED.status,
		    avg_monthly_balance_kzt = EXCLUDED.avg_monthly_balance_kzt,
		    city = EXCLUDED.city,
		    age = EXCLUDED.age,
		    updated_at = EXCLUDED.updated_at
	`, profile.ClientCode, profile.Name, profile.Status, profile.AvgMonthlyBalance, profile.City, profile.Age, now)
	if err != nil {
		return fmt.Errorf("failed to upsert client: %w", err)
	}

	for _, rec := range recs {
		_, err = tx.Exec(ctx, `
			INSERT INTO product_benefits (id, client_code, product, push_notification, score, expected_benefit, priority, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.New(), profile.ClientCode, rec.Product, rec.PushNotification, rec.Score, rec.ExpectedBenefit, string(rec.Priority), now)
		if err != nil {
			return fmt.Errorf("failed to insert benefit for product %s: %w", rec.Product, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LatestRecommendations returns the most recent recommendations for a
// client, best score first.
func (r *BenefitRepository) LatestRecommendations(ctx context.Context, clientCode int64, limit int) ([]models.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product, push_notification, score, expected_benefit, priority
		FROM product_benefits
		WHERE client_code = $1
		ORDER BY created_at DESC, score DESC
		LIMIT $2
	`, clientCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query benefits: %w", err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		var priority string
		if err := rows.Scan(&rec.Product, &rec.PushNotification, &rec.Score, &rec.ExpectedBenefit, &priority); err != nil {
			return nil, fmt.Errorf("failed to scan benefit: %w", err)
		}
		rec.Priority = models.Priority(priority)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read benefits: %w", err)
	}
	return recs, nil
}
