package storage

import (
	"testing"

	"github.com/liftstack/liftlog/internal/models"
)

// TestPlanPhases verifies template expansion: planned weight is the base
// weight scaled by each phase's modifier, phase order preserved.
func TestPlanPhases(t *testing.T) {
	templates := []models.PhaseTemplate{
		{PhaseNumber: 1, RepRangeMin: 10, RepRangeMax: 12, WeightModifier: 0.5, TargetRestSeconds: 60},
		{PhaseNumber: 2, RepRangeMin: 8, RepRangeMax: 10, WeightModifier: 0.75, TargetRestSeconds: 90},
		{PhaseNumber: 3, RepRangeMin: 6, RepRangeMax: 8, WeightModifier: 1.0, TargetRestSeconds: 180},
	}

	planned := PlanPhases(templates, 100)
	if len(planned) != 3 {
		t.Fatalf("planned phases = %d, want 3", len(planned))
	}

	wantWeights := []float64{50, 75, 100}
	for i, p := range planned {
		if p.PhaseNumber != i+1 {
			t.Errorf("phase[%d].PhaseNumber = %d, want %d", i, p.PhaseNumber, i+1)
		}
		if p.PlannedWeight != wantWeights[i] {
			t.Errorf("phase[%d].PlannedWeight = %.1f, want %.1f", i, p.PlannedWeight, wantWeights[i])
		}
	}
	if planned[2].TargetRestSeconds != 180 {
		t.Errorf("rest = %d, want 180", planned[2].TargetRestSeconds)
	}
}

// TestPlanPhasesRounding verifies modifier arithmetic rounds to one decimal,
// e.g. 0.85 of 107.5 is 91.375 -> 91.4.
func TestPlanPhasesRounding(t *testing.T) {
	templates := []models.PhaseTemplate{
		{PhaseNumber: 1, RepRangeMin: 5, RepRangeMax: 5, WeightModifier: 0.85},
	}
	planned := PlanPhases(templates, 107.5)
	if planned[0].PlannedWeight != 91.4 {
		t.Errorf("planned weight = %v, want 91.4", planned[0].PlannedWeight)
	}
}

// TestPlanPhasesEmpty verifies an empty template list expands to an empty,
// non-nil plan.
func TestPlanPhasesEmpty(t *testing.T) {
	planned := PlanPhases(nil, 100)
	if planned == nil || len(planned) != 0 {
		t.Errorf("planned = %v, want empty slice", planned)
	}
}
