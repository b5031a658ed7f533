package storage

import "testing"

func fptr(f float64) *float64 { return &f }

// TestRecoveryPercentage verifies the time-decay model: never-trained
// muscles are fully recovered, the documented example (rate 0.1, 3 days)
// gives 30, and the result is clamped to [0, 100].
func TestRecoveryPercentage(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		days *float64
		want float64
	}{
		{"never trained", 0.1, nil, 100},
		{"example: 0.1 rate, 3 days", 0.1, fptr(3), 30},
		{"just trained", 0.2, fptr(0), 0},
		{"half day", 0.5, fptr(0.5), 25},
		{"fully recovered", 0.25, fptr(4), 100},
		{"clamped above 100", 0.5, fptr(30), 100},
		{"fast recovery rate", 1.0, fptr(0.75), 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recoveryPercentage(tt.rate, tt.days)
			if got != tt.want {
				t.Errorf("recoveryPercentage(%.2f, %v) = %.2f, want %.2f", tt.rate, tt.days, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("recoveryPercentage out of bounds: %.2f", got)
			}
		})
	}
}
