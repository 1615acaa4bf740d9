package quality

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// DetectConsistency checks three internal-consistency properties: that a
// cumulative series never decreases, that no date carries two distinct
// values, and that period-aggregated series keep a regular reporting
// interval (§4.H.5).
func DetectConsistency(points []domain.SamplePoint, hints domain.ClassificationHints) []domain.QualityFlag {
	sorted := sortedCopy(points)

	var flags []domain.QualityFlag
	flags = append(flags, detectMonotonicity(sorted, hints)...)
	flags = append(flags, detectDuplicateDates(sorted)...)
	flags = append(flags, detectIntervalConsistency(sorted, hints)...)
	return flags
}

func detectMonotonicity(sorted []domain.SamplePoint, hints domain.ClassificationHints) []domain.QualityFlag {
	if !hints.IsCumulative || len(sorted) < 2 {
		return nil
	}

	violations := 0
	var affected []time.Time
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1].Value, sorted[i].Value
		if next < prev-math.Abs(prev)*1e-4 {
			violations++
			affected = append(affected, sorted[i].Date)
		}
	}
	if violations == 0 {
		return nil
	}

	severity, status := 3, domain.StatusFlagged
	if float64(violations)/float64(len(sorted)) > 0.1 {
		severity, status = 5, domain.StatusCritical
	}
	return []domain.QualityFlag{{
		CheckType:     "consistency",
		Status:        status,
		Severity:      severity,
		Message:       fmt.Sprintf("%d monotonicity violation(s) in cumulative series", violations),
		Details:       map[string]any{"violations": violations},
		AffectedDates: affected,
	}}
}

func detectDuplicateDates(sorted []domain.SamplePoint) []domain.QualityFlag {
	byDate := map[time.Time][]float64{}
	for _, p := range sorted {
		byDate[p.Date] = append(byDate[p.Date], p.Value)
	}

	var dupDates []time.Time
	for d, vals := range byDate {
		if len(vals) >= 2 && !allEqual(vals) {
			dupDates = append(dupDates, d)
		}
	}
	if len(dupDates) == 0 {
		return nil
	}
	sort.Slice(dupDates, func(i, j int) bool { return dupDates[i].Before(dupDates[j]) })

	return []domain.QualityFlag{{
		CheckType:     "consistency",
		Status:        domain.StatusCritical,
		Severity:      5,
		Message:       "duplicate dates carry distinct values",
		AffectedDates: dupDates,
	}}
}

func detectIntervalConsistency(sorted []domain.SamplePoint, hints domain.ClassificationHints) []domain.QualityFlag {
	if hints.TemporalAggregation != domain.AggPeriodTotal && hints.TemporalAggregation != domain.AggPeriodAverage {
		return nil
	}
	if len(sorted) <= 5 {
		return nil
	}

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Date.Sub(sorted[i-1].Date).Hours()/24)
	}
	gapMean, gapVariance := stat.PopMeanVariance(gaps, nil)
	if gapMean == 0 {
		return nil
	}
	cv := math.Sqrt(gapVariance) / gapMean * 100
	if cv <= 30 {
		return nil
	}

	return []domain.QualityFlag{{
		CheckType: "consistency",
		Status:    domain.StatusFlagged,
		Severity:  2,
		Message:   fmt.Sprintf("reporting interval coefficient of variation %.1f%%", cv),
		Details:   map[string]any{"coefficient_of_variation": cv},
	}}
}
