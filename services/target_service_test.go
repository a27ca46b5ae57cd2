package services

import (
	"fmt"
	"math"
	"testing"

	"carbonboard/models"
)

func flatActuals(year int, value float64) map[string]float64 {
	out := make(map[string]float64, 12)
	for m := 1; m <= 12; m++ {
		out[fmt.Sprintf("%d-%02d", year, m)] = value
	}
	return out
}

func TestProjectLinear(t *testing.T) {
	cfg := &models.TargetConfig{BaselineYear: 2024, TargetYear: 2026, ReductionPct: 30}
	actual := flatActuals(2024, 100)

	got := ProjectLinear(cfg, actual)

	if len(got) != 36 {
		t.Fatalf("Expected 36 months, got %d", len(got))
	}
	if got["2024-01"] != 100 {
		t.Errorf("Expected no reduction at the first month, got %v", got["2024-01"])
	}
	if math.Abs(got["2026-12"]-70) > 1e-9 {
		t.Errorf("Expected full reduction at the last month, got %v", got["2026-12"])
	}

	// With a flat baseline the glide path is monotonically non-increasing.
	prev := math.Inf(1)
	for idx := 0; idx < 36; idx++ {
		ym := fmt.Sprintf("%d-%02d", 2024+idx/12, idx%12+1)
		v, ok := got[ym]
		if !ok {
			t.Fatalf("Missing month %s", ym)
		}
		if v > prev {
			t.Errorf("Value increased at %s: %v > %v", ym, v, prev)
		}
		prev = v
	}
}

func TestProjectLinearBaselineFallback(t *testing.T) {
	cfg := &models.TargetConfig{BaselineYear: 2024, TargetYear: 2025, ReductionPct: 0}
	actual := map[string]float64{
		"2024-01": 80,
		"2024-02": 120,
	}

	got := ProjectLinear(cfg, actual)

	if got["2024-01"] != 80 || got["2024-02"] != 120 {
		t.Errorf("Expected observed baseline months to pass through, got %v / %v", got["2024-01"], got["2024-02"])
	}
	// Months the baseline year never observed use the overall average.
	if got["2024-03"] != 100 {
		t.Errorf("Expected average 100 for unobserved month, got %v", got["2024-03"])
	}
}

func TestProjectLinearDegenerate(t *testing.T) {
	actual := flatActuals(2024, 100)

	testCases := []struct {
		name string
		cfg  *models.TargetConfig
	}{
		{name: "Nil config", cfg: nil},
		{name: "Zero years", cfg: &models.TargetConfig{}},
		{name: "Target equals baseline", cfg: &models.TargetConfig{BaselineYear: 2024, TargetYear: 2024, ReductionPct: 30}},
		{name: "Target before baseline", cfg: &models.TargetConfig{BaselineYear: 2024, TargetYear: 2020, ReductionPct: 30}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProjectLinear(tc.cfg, actual); got != nil {
				t.Errorf("Expected nil projection, got %d months", len(got))
			}
		})
	}
}

func TestProjectLinearClampsPct(t *testing.T) {
	actual := flatActuals(2024, 100)

	over := ProjectLinear(&models.TargetConfig{BaselineYear: 2024, TargetYear: 2025, ReductionPct: 150}, actual)
	if math.Abs(over["2025-12"]-0) > 1e-9 {
		t.Errorf("Expected 100%% reduction at the end, got %v", over["2025-12"])
	}

	under := ProjectLinear(&models.TargetConfig{BaselineYear: 2024, TargetYear: 2025, ReductionPct: -20}, actual)
	if under["2025-12"] != 100 {
		t.Errorf("Expected no reduction for negative pct, got %v", under["2025-12"])
	}
}

func TestResolveTargetsPrecedence(t *testing.T) {
	cfg := &models.TargetConfig{BaselineYear: 2024, TargetYear: 2025, ReductionPct: 10}
	actual := flatActuals(2024, 100)
	explicit := map[string]float64{"2024-01": 1}
	edited := map[string]float64{"2024-01": 2}

	if got := ResolveTargets(explicit, edited, cfg, actual); got["2024-01"] != 1 {
		t.Errorf("Expected explicit map to win, got %v", got["2024-01"])
	}
	if got := ResolveTargets(nil, edited, cfg, actual); got["2024-01"] != 2 {
		t.Errorf("Expected user-edited map to win, got %v", got["2024-01"])
	}
	if got := ResolveTargets(nil, nil, cfg, actual); len(got) != 24 {
		t.Errorf("Expected auto projection, got %d months", len(got))
	}
	if got := ResolveTargets(nil, nil, nil, actual); got != nil {
		t.Errorf("Expected no targets, got %d months", len(got))
	}
}

func TestTargetVsActual(t *testing.T) {
	actual := map[string]float64{"2024-01": 100, "2024-02": 90}
	targets := map[string]float64{"2024-02": 95, "2024-03": 85}

	rows := TargetVsActual(actual, targets)

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].YearMonth != "2024-01" || rows[0].Target != nil {
		t.Errorf("Expected 2024-01 without target, got %+v", rows[0])
	}
	if rows[1].Actual != 90 || rows[1].Target == nil || *rows[1].Target != 95 {
		t.Errorf("Expected 2024-02 with both series, got %+v", rows[1])
	}
	if rows[2].Actual != 0 || rows[2].Target == nil || *rows[2].Target != 85 {
		t.Errorf("Expected 2024-03 with zero actual, got %+v", rows[2])
	}
}
