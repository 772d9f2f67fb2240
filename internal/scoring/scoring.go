package scoring

import (
	"sort"

	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/models"
)

// Result is the outcome of evaluating one product scenario against a client.
// Metrics carries scenario-specific values (travel spend, potential cashback,
// fx volume, ...) consumed by the notification generator.
type Result struct {
	Score           float64
	ExpectedBenefit float64
	Reasons         []string
	Metrics         map[string]float64
}

// Scenario scores one catalog product for a client. Implementations must be
// pure functions of the summary: no retained state between calls.
type Scenario interface {
	Product() string
	Evaluate(sum *analytics.Summary) Result
}

// Scored pairs a catalog product with its evaluation result.
type Scored struct {
	Product string
	Result
}

// Engine ranks the full product catalog for a client.
type Engine struct {
	scenarios []Scenario
}

// NewEngine creates an engine over the given scenarios. Slice order defines
// the tie-break order for equal scores.
func NewEngine(scenarios []Scenario) *Engine {
	return &Engine{scenarios: scenarios}
}

// Products returns the catalog names in tie-break order.
func (e *Engine) Products() []string {
	names := make([]string, len(e.scenarios))
	for i, sc := range e.scenarios {
		names[i] = sc.Product()
	}
	return names
}

// EvaluateAll scores every catalog product and returns the results sorted by
// descending score. Equal scores keep catalog order, so the ranking is fully
// deterministic.
func (e *Engine) EvaluateAll(sum *analytics.Summary) []Scored {
	scored := make([]Scored, len(e.scenarios))
	for i, sc := range e.scenarios {
		scored[i] = Scored{Product: sc.Product(), Result: sc.Evaluate(sum)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Best returns the highest-scoring product for the client.
func (e *Engine) Best(sum *analytics.Summary) Scored {
	return e.EvaluateAll(sum)[0]
}

// PriorityFor derives the urgency tier from the score alone, so a higher
// score never yields a lower tier.
func PriorityFor(score float64) models.Priority {
	switch {
	case score > 0.8:
		return models.PriorityHigh
	case score > 0.5:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// Clamp bounds a score to [0,1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
