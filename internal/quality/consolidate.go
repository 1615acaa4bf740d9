package quality

import "github.com/aristath/indicator-normalize/internal/domain"

// severityWeight maps a flag's severity (1-5) to the score points it
// deducts from a clean 100 (§4.H Consolidator).
var severityWeight = map[int]float64{1: 2, 2: 5, 3: 10, 4: 20, 5: 40}

// checkOrder fixes the iteration order of the five detector categories
// so AllFlags and the per-check passed/flagged/critical tally are
// reproducible across runs regardless of goroutine completion order.
var checkOrder = []string{"staleness", "magnitude_anomaly", "false_readings", "unit_change", "consistency"}

// consolidate aggregates the five detectors' flags into a single report
// (§4.H Consolidator). A detector contributing no flags counts as
// passed; one contributing only flagged-severity flags counts as
// flagged; one contributing any critical-severity flag counts as
// critical. The overall score deducts severityWeight for every
// individual flag across all detectors, clamped to [0, 100].
func consolidate(indicatorID string, byCheck map[string][]domain.QualityFlag) domain.ConsolidatedQualityReport {
	report := domain.ConsolidatedQualityReport{IndicatorID: indicatorID, TotalChecks: len(checkOrder)}

	deduction := 0.0
	maxSeverity := 0

	for _, checkType := range checkOrder {
		flags := byCheck[checkType]
		report.AllFlags = append(report.AllFlags, flags...)

		if len(flags) == 0 {
			report.Passed++
			continue
		}

		worstStatus := domain.StatusFlagged
		for _, f := range flags {
			deduction += severityWeight[f.Severity]
			if f.Severity > maxSeverity {
				maxSeverity = f.Severity
			}
			if f.Status == domain.StatusCritical {
				worstStatus = domain.StatusCritical
			}
		}
		if worstStatus == domain.StatusCritical {
			report.Critical++
		} else {
			report.Flagged++
		}
	}

	score := 100 - deduction
	switch {
	case score < 0:
		score = 0
	case score > 100:
		score = 100
	}
	report.OverallScore = score

	switch {
	case len(report.AllFlags) == 0:
		report.Status = "clean"
	case maxSeverity <= 2:
		report.Status = "minor_issues"
	case maxSeverity <= 4:
		report.Status = "major_issues"
	default:
		report.Status = "unusable"
	}

	return report
}
