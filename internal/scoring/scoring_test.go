package scoring

import (
	"testing"

	"github.com/zharashanus/push-analytic/internal/analytics"
	"github.com/zharashanus/push-analytic/internal/models"
)

type fixedScenario struct {
	name  string
	score float64
}

func (f fixedScenario) Product() string { return f.name }

func (f fixedScenario) Evaluate(_ *analytics.Summary) Result {
	return Result{Score: f.score}
}

func TestEvaluateAllSortsDescending(t *testing.T) {
	engine := NewEngine([]Scenario{
		fixedScenario{"a", 0.2},
		fixedScenario{"b", 0.9},
		fixedScenario{"c", 0.5},
	})

	scored := engine.EvaluateAll(nil)

	if scored[0].Product != "b" || scored[1].Product != "c" || scored[2].Product != "a" {
		t.Errorf("unexpected order: %s %s %s", scored[0].Product, scored[1].Product, scored[2].Product)
	}
}

func TestEvaluateAllTieBreakKeepsCatalogOrder(t *testing.T) {
	engine := NewEngine([]Scenario{
		fixedScenario{"first", 0.5},
		fixedScenario{"second", 0.5},
		fixedScenario{"third", 0.7},
	})

	scored := engine.EvaluateAll(nil)

	if scored[0].Product != "third" {
		t.Fatalf("expected third on top, got %s", scored[0].Product)
	}
	if scored[1].Product != "first" || scored[2].Product != "second" {
		t.Errorf("tie-break broke catalog order: %s then %s", scored[1].Product, scored[2].Product)
	}
}

func TestBestReturnsTopProduct(t *testing.T) {
	engine := NewEngine([]Scenario{
		fixedScenario{"a", 0.3},
		fixedScenario{"b", 0.8},
	})

	if best := engine.Best(nil); best.Product != "b" {
		t.Errorf("expected b, got %s", best.Product)
	}
}

func TestPriorityFor(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Priority
	}{
		{0.0, models.PriorityLow},
		{0.5, models.PriorityLow},
		{0.51, models.PriorityMedium},
		{0.8, models.PriorityMedium},
		{0.81, models.PriorityHigh},
		{1.0, models.PriorityHigh},
	}
	for _, c := range cases {
		if got := PriorityFor(c.score); got != c.want {
			t.Errorf("PriorityFor(%f) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestPriorityMonotonicInScore(t *testing.T) {
	rank := map[models.Priority]int{models.PriorityLow: 0, models.PriorityMedium: 1, models.PriorityHigh: 2}
	prev := models.PriorityLow
	for score := 0.0; score <= 1.0; score += 0.01 {
		p := PriorityFor(score)
		if rank[p] < rank[prev] {
			t.Fatalf("priority dropped from %s to %s at score %f", prev, p, score)
		}
		prev = p
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-0.5) != 0 {
		t.Errorf("expected negative score clamped to 0")
	}
	if Clamp(1.7) != 1 {
		t.Errorf("expected score above 1 clamped to 1")
	}
	if Clamp(0.42) != 0.42 {
		t.Errorf("expected in-range score untouched")
	}
}
