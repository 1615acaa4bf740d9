// Package quality implements the Quality Detector Suite (§4.H): five
// independent detectors over a single indicator's time series, plus the
// consolidator that aggregates their verdicts. Every detector is a pure
// function — it copies and sorts its input rather than mutating it, and
// shares no state with the others, so they may run in any order or in
// parallel (§5, §9).
package quality

import (
	"sort"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// sortedCopy returns points sorted ascending by date, leaving the input
// slice untouched.
func sortedCopy(points []domain.SamplePoint) []domain.SamplePoint {
	out := make([]domain.SamplePoint, len(points))
	copy(out, points)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func extractValues(points []domain.SamplePoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func medianOf(sortedValues []float64) float64 {
	n := len(sortedValues)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sortedValues[n/2]
	}
	return (sortedValues[n/2-1] + sortedValues[n/2]) / 2
}

func withinPercent(value, target, tolerance float64) bool {
	if target == 0 {
		return false
	}
	diff := value - target
	if diff < 0 {
		diff = -diff
	}
	return diff/target <= tolerance
}

func allEqual(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[0] {
			return false
		}
	}
	return true
}
