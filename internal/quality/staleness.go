package quality

import (
	"fmt"
	"time"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// DetectStaleness flags a series that has gone quiet, or that carries a
// historical gap wider than its expected cadence tolerates (§4.H.1).
//
// now is caller-supplied rather than time.Now(), so the detector stays a
// pure function of its arguments and reruns deterministically.
func DetectStaleness(points []domain.SamplePoint, hints domain.ClassificationHints, now time.Time) []domain.QualityFlag {
	sorted := sortedCopy(points)
	if len(sorted) == 0 {
		return nil
	}

	expected := hints.ExpectedFrequency.ExpectedGapDays()
	threshold := expected * 1.5

	last := sorted[len(sorted)-1].Date
	daysSince := now.Sub(last).Hours() / 24

	var flags []domain.QualityFlag

	if daysSince > threshold {
		severity, status := 3, domain.StatusFlagged
		if daysSince > expected*3 {
			severity, status = 5, domain.StatusCritical
		}
		flags = append(flags, domain.QualityFlag{
			CheckType:     "staleness",
			Status:        status,
			Severity:      severity,
			Message:       fmt.Sprintf("no data for %.0f days", daysSince),
			Details:       map[string]any{"days_since": daysSince, "expected_gap_days": expected},
			AffectedDates: []time.Time{last},
		})
	}

	if len(sorted) >= 2 {
		maxGap := 0.0
		gapStart := sorted[0].Date
		for i := 1; i < len(sorted); i++ {
			gap := sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24
			if gap > maxGap {
				maxGap = gap
				gapStart = sorted[i-1].Date
			}
		}
		if maxGap > threshold && maxGap != daysSince {
			flags = append(flags, domain.QualityFlag{
				CheckType:     "staleness",
				Status:        domain.StatusFlagged,
				Severity:      2,
				Message:       fmt.Sprintf("historical gap of %.0f days", maxGap),
				Details:       map[string]any{"max_historical_gap_days": maxGap},
				AffectedDates: []time.Time{gapStart},
			})
		}
	}

	return flags
}
