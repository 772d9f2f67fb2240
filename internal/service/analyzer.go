package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/models"
	"github.com/zharashanus/push-analytic/internal/notification"
	"github.com/zharashanus/push-analytic/internal/products"
	"github.com/zharashanus/push-analytic/internal/scoring"
)

// BenefitStore persists computed recommendations for offline analytics.
type BenefitStore interface {
	SaveRecommendations(ctx context.Context, profile *models.ClientProfile, recs []models.Recommendation) error
}

// EventPublisher hands generated pushes to the delivery pipeline.
type EventPublisher interface {
	PublishPushEvent(ctx context.Context, event models.PushNotificationEvent) error
}

// ResponseCache stores rendered analyze-all responses keyed by request body.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Analyzer runs the product catalog over a client profile and renders push
// notifications. The store, publisher and cache are optional: analysis stays
// available when the side channels are down or not configured.
type Analyzer struct {
	engine     *scoring.Engine
	generator  *notification.Generator
	periodDays int

	store     BenefitStore
	publisher EventPublisher
	cache     ResponseCache
	cacheTTL  time.Duration
}

func NewAnalyzer(periodDays int, store BenefitStore, publisher EventPublisher, cache ResponseCache, cacheTTL time.Duration) *Analyzer {
	return &Analyzer{
		engine:     scoring.NewEngine(products.Catalog()),
		generator:  notification.NewGenerator(),
		periodDays: periodDays,
		store:      store,
		publisher:  publisher,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Analyze picks the best product for the client and renders its push.
func (a *Analyzer) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile := req.Profile()
	sum := analytics.Summarize(profile, a.periodDays)
	best := a.engine.Best(sum)
	message := a.generator.Build(best.Product, sum, best.Result)

	rec := models.Recommendation{
		Product:          best.Product,
		PushNotification: message,
		Score:            best.Score,
		ExpectedBenefit:  best.ExpectedBenefit,
		Priority:         scoring.PriorityFor(best.Score),
	}
	a.persist(ctx, profile, []models.Recommendation{rec})
	a.publish(ctx, profile, rec)

	return &models.AnalyzeResponse{
		ClientCode:       profile.ClientCode,
		Product:          best.Product,
		PushNotification: message,
	}, nil
}

// AnalyzeAll scores the full catalog for the client, best first. Responses
// are served from cache when an identical request was analyzed recently.
func (a *Analyzer) AnalyzeAll(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeAllResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := requestKey(req)
	if cached := a.cachedResponse(ctx, key); cached != nil {
		return cached, nil
	}

	profile := req.Profile()
	sum := analytics.Summarize(profile, a.periodDays)
	scored := a.engine.EvaluateAll(sum)

	recs := make([]models.Recommendation, 0, len(scored))
	for _, s := range scored {
		recs = append(recs, models.Recommendation{
			Product:          s.Product,
			PushNotification: a.generator.Build(s.Product, sum, s.Result),
			Score:            s.Score,
			ExpectedBenefit:  s.ExpectedBenefit,
			Priority:         scoring.PriorityFor(s.Score),
		})
	}
	a.persist(ctx, profile, recs)

	resp := &models.AnalyzeAllResponse{
		ClientCode:      profile.ClientCode,
		Recommendations: recs,
	}
	a.cacheResponse(ctx, key, resp)
	return resp, nil
}

func (a *Analyzer) persist(ctx context.Context, profile *models.ClientProfile, recs []models.Recommendation) {
	if a.store == nil {
		return
	}
	if err := a.store.SaveRecommendations(ctx, profile, recs); err != nil {
		log.Printf("Failed to save recommendations for client %d: %v", profile.ClientCode, err)
	}
}

func (a *Analyzer) publish(ctx context.Context, profile *models.ClientProfile, rec models.Recommendation) {
	if a.publisher == nil {
		return
	}
	event := models.PushNotificationEvent{
		EventID:         uuid.NewString(),
		ClientCode:      profile.ClientCode,
		Product:         rec.Product,
		Message:         rec.PushNotification,
		Score:           rec.Score,
		ExpectedBenefit: rec.ExpectedBenefit,
		Priority:        rec.Priority,
		Timestamp:       time.Now().UTC(),
	}
	if err := a.publisher.PublishPushEvent(ctx, event); err != nil {
		log.Printf("Failed to publish push event for client %d: %v", profile.ClientCode, err)
	}
}

func (a *Analyzer) cachedResponse(ctx context.Context, key string) *models.AnalyzeAllResponse {
	if a.cache == nil {
		return nil
	}
	data, err := a.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var resp models.AnalyzeAllResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		log.Printf("Failed to decode cached response: %v", err)
		return nil
	}
	return &resp
}

func (a *Analyzer) cacheResponse(ctx context.Context, key string, resp *models.AnalyzeAllResponse) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, a.cacheTTL); err != nil {
		log.Printf("Failed to cache response for key %s: %v", key, err)
	}
}

// requestKey derives a stable cache key from the canonical JSON form of the
// request, so identical payloads hit the same entry.
func requestKey(req *models.AnalyzeRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Sprintf("analyze_all:%d", time.Now().UnixNano())
	}
	digest := sha256.Sum256(data)
	return "analyze_all:" + hex.EncodeToString(digest[:])
}
