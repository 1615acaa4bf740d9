package quality

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// DetectMagnitudeAnomaly flags individual outliers (by z-score against
// the series' population mean/stdev) and sudden period-over-period
// changes (§4.H.2). Cumulative series get a wider outlier threshold
// (z > 4 instead of 3) and a tighter sudden-change threshold (50%
// instead of 100%).
func DetectMagnitudeAnomaly(points []domain.SamplePoint, hints domain.ClassificationHints) []domain.QualityFlag {
	sorted := sortedCopy(points)
	if len(sorted) < 2 {
		return nil
	}
	values := extractValues(sorted)

	outlierThreshold := 3.0
	suddenThreshold := 100.0
	if hints.IsCumulative {
		outlierThreshold = 4.0
		suddenThreshold = 50.0
	}
	const extremeThreshold = 1000.0

	var flags []domain.QualityFlag

	meanVal, variance := stat.PopMeanVariance(values, nil)
	sigma := math.Sqrt(variance)
	if sigma > 0 {
		for i, v := range values {
			z := math.Abs(v-meanVal) / sigma
			if z <= outlierThreshold {
				continue
			}
			severity, status := 2, domain.StatusFlagged
			if z > 5 {
				severity, status = 5, domain.StatusCritical
			}
			flags = append(flags, domain.QualityFlag{
				CheckType:     "magnitude_anomaly",
				Status:        status,
				Severity:      severity,
				Message:       fmt.Sprintf("outlier z-score %.2f at %s", z, sorted[i].Date.Format("2006-01-02")),
				Details:       map[string]any{"z_score": z, "value": v, "mean": meanVal, "stdev": sigma},
				AffectedDates: []time.Time{sorted[i].Date},
			})
		}
	}

	for i := 1; i < len(sorted); i++ {
		prev, cur := values[i-1], values[i]
		var changePercent float64
		switch {
		case prev == 0 && cur == 0:
			continue
		case prev == 0:
			changePercent = math.Inf(1)
		default:
			changePercent = math.Abs(cur-prev) / math.Abs(prev) * 100
		}

		var severity int
		var status domain.QualityStatus
		switch {
		case changePercent > extremeThreshold:
			severity, status = 5, domain.StatusCritical
		case changePercent > 3*suddenThreshold:
			severity, status = 4, domain.StatusCritical
		case changePercent > suddenThreshold:
			severity, status = 3, domain.StatusFlagged
		default:
			continue
		}
		flags = append(flags, domain.QualityFlag{
			CheckType:     "magnitude_anomaly",
			Status:        status,
			Severity:      severity,
			Message:       fmt.Sprintf("sudden change of %.1f%% at %s", changePercent, sorted[i].Date.Format("2006-01-02")),
			Details:       map[string]any{"change_percent": changePercent},
			AffectedDates: []time.Time{sorted[i].Date},
		})
	}

	return flags
}
