package storage

import "testing"

// TestEstimateWeightExamples verifies the back-projection formula against
// known points: the single stays exact, and 100 at 5 reps rounds to 86.
func TestEstimateWeightExamples(t *testing.T) {
	tests := []struct {
		max  float64
		reps int
		want float64
	}{
		{100, 1, 100},
		{100, 5, 86},  // 100 / (1 + 0.0333*5) = 85.72 -> 86
		{100, 10, 75}, // 100 / 1.333 = 75.02 -> 75
		{100, 30, 50}, // 100 / 1.999 = 50.03 -> 50
		{142.5, 1, 142.5},
		{60, 2, 56},
	}
	for _, tt := range tests {
		if got := estimateWeight(tt.max, tt.reps); got != tt.want {
			t.Errorf("estimateWeight(%.1f, %d) = %.1f, want %.1f", tt.max, tt.reps, got, tt.want)
		}
	}
}

// TestRecordCurveMonotonic verifies the required properties of the curve:
// 30 points, estimate(1) equals the max exactly, and the weights never
// increase as reps grow.
func TestRecordCurveMonotonic(t *testing.T) {
	for _, max := range []float64{1, 42.5, 100, 180, 312.5} {
		curve := recordCurve(max)
		if len(curve) != 30 {
			t.Fatalf("max %.1f: curve length = %d, want 30", max, len(curve))
		}
		if curve[0].Reps != 1 || curve[0].Weight != max {
			t.Errorf("max %.1f: curve[0] = %+v, want {1 %.1f}", max, curve[0], max)
		}
		for i := 1; i < len(curve); i++ {
			if curve[i].Reps != i+1 {
				t.Errorf("max %.1f: curve[%d].Reps = %d, want %d", max, i, curve[i].Reps, i+1)
			}
			if curve[i].Weight > curve[i-1].Weight {
				t.Errorf("max %.1f: weight increased at %d reps: %.1f > %.1f",
					max, curve[i].Reps, curve[i].Weight, curve[i-1].Weight)
			}
		}
	}
}
