// Package plates decomposes a target barbell load into the plates to put on
// each side of the bar. It is a pure calculation with no storage access.
package plates

import (
	"fmt"
	"math"
)

// Unit selects the bar weight and default plate inventory.
type Unit string

const (
	Metric   Unit = "metric"   // 20 unit bar, kg-style plates
	Imperial Unit = "imperial" // 45 unit bar, lb-style plates
)

// Bar weights, in the same unit as the target weight.
const (
	MetricBarWeight   = 20.0
	ImperialBarWeight = 45.0
)

var (
	metricPlates   = []float64{25, 20, 15, 10, 5, 2.5, 1.25, 0.5}
	imperialPlates = []float64{45, 35, 25, 10, 5, 2.5}
)

// PlateCount is one plate size and how many of it go on each side.
type PlateCount struct {
	Size  float64 `json:"size"`
	Count int     `json:"count"`
}

// Breakdown is the result of decomposing a target weight.
// When BarOnly is true the target is at or below the bar weight and no
// plates are needed; Plates and Unaccounted are zero.
type Breakdown struct {
	BarOnly     bool         `json:"bar_only"`
	BarWeight   float64      `json:"bar_weight"`
	Plates      []PlateCount `json:"plates,omitempty"`
	Unaccounted float64      `json:"unaccounted_weight"`
}

// ParseUnit converts a query-string value into a Unit. An empty value
// defaults to metric.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "", string(Metric):
		return Metric, nil
	case string(Imperial):
		return Imperial, nil
	}
	return "", fmt.Errorf("unknown unit system %q", s)
}

// BarWeight returns the bar weight for the unit system.
func BarWeight(unit Unit) float64 {
	if unit == Imperial {
		return ImperialBarWeight
	}
	return MetricBarWeight
}

// DefaultPlates returns the standard plate inventory for the unit system,
// largest first. The returned slice is a copy and safe to modify.
func DefaultPlates(unit Unit) []float64 {
	src := metricPlates
	if unit == Imperial {
		src = imperialPlates
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Calculate decomposes targetWeight into per-side plates. available may be
// nil to use the default inventory for the unit; otherwise it must be sorted
// largest first. Greedy: each plate size is used as many times as fits
// before moving to the next smaller one, so the result is deterministic.
// Unaccounted is whatever per-side weight remains after the smallest plate,
// rounded to one decimal; it is always less than the smallest plate size.
func Calculate(targetWeight float64, unit Unit, available []float64) Breakdown {
	bar := BarWeight(unit)
	if available == nil {
		available = DefaultPlates(unit)
	}

	remaining := targetWeight - bar
	if remaining <= 0 {
		return Breakdown{BarOnly: true, BarWeight: bar}
	}

	perSide := remaining / 2
	result := Breakdown{BarWeight: bar}

	for _, size := range available {
		// Epsilon guards against float drift, e.g. 0.75/0.25 scaling
		// producing 2.9999999 instead of 3.
		count := int(math.Floor(perSide/size + 1e-9))
		if count == 0 {
			continue
		}
		perSide -= float64(count) * size
		result.Plates = append(result.Plates, PlateCount{Size: size, Count: count})
	}

	result.Unaccounted = math.Round(perSide*10) / 10
	return result
}
