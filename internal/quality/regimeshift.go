package quality

import (
	"fmt"
	"time"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// canonicalFactors are the unit-change ratios a regime shift is checked
// against: thousand, million, and billion — the jumps a source most
// commonly introduces by silently changing its reporting unit mid-series.
var canonicalFactors = []float64{1e3, 1e6, 1e9}

// DetectRegimeShift slides a window across the series comparing the mean
// of the preceding window to the mean of the following one, flagging a
// pivot whose before/after ratio lands near a canonical unit-change
// factor (§4.H.4). Too few points to form two non-trivial windows is
// treated as insufficient data, not a flag.
func DetectRegimeShift(points []domain.SamplePoint) []domain.QualityFlag {
	sorted := sortedCopy(points)
	n := len(sorted)
	window := n / 4
	if window > 10 {
		window = 10
	}
	if window < 3 {
		return nil
	}
	values := extractValues(sorted)

	var flags []domain.QualityFlag
	for i := window; i <= n-window; i++ {
		before := mean(values[i-window : i])
		after := mean(values[i : i+window])
		if before == 0 {
			continue
		}
		ratio := after / before

		for _, factor := range canonicalFactors {
			if !withinPercent(ratio, factor, 0.2) && !withinPercent(1/ratio, factor, 0.2) {
				continue
			}
			severity, status := 3, domain.StatusFlagged
			switch {
			case factor >= 1e6:
				severity, status = 5, domain.StatusCritical
			case factor >= 1e3:
				severity, status = 4, domain.StatusCritical
			}
			flags = append(flags, domain.QualityFlag{
				CheckType:     "unit_change",
				Status:        status,
				Severity:      severity,
				Message:       fmt.Sprintf("regime shift detected at %s (ratio %.2f)", sorted[i].Date.Format("2006-01-02"), ratio),
				Details:       map[string]any{"ratio": ratio, "canonical_factor": factor},
				AffectedDates: []time.Time{sorted[i].Date},
			})
			break
		}
	}
	return flags
}
