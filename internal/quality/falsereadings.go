package quality

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// decimalScales are the shift factors checked by the decimal-error
// sub-detector: the classic off-by-a-decimal-point and off-by-a-thousand
// data entry mistakes.
var decimalScales = []float64{10, 100, 1000, 10000, 0.1, 0.01, 0.001, 0.0001}

// DetectFalseReadings runs the four false-reading sub-detectors over a
// series: impossible (negative) values for indicator types that can
// never go negative, flat periods, repeating 3-value patterns, and
// suspected decimal-shift errors (§4.H.3).
func DetectFalseReadings(points []domain.SamplePoint, hints domain.ClassificationHints) []domain.QualityFlag {
	sorted := sortedCopy(points)
	if len(sorted) == 0 {
		return nil
	}
	values := extractValues(sorted)

	var flags []domain.QualityFlag
	flags = append(flags, detectImpossibleValues(sorted, values, hints)...)
	flags = append(flags, detectFlatPeriods(sorted, values)...)
	flags = append(flags, detectRepeatingPatterns(sorted, values)...)
	flags = append(flags, detectDecimalErrors(sorted, values)...)
	return flags
}

func detectImpossibleValues(sorted []domain.SamplePoint, values []float64, hints domain.ClassificationHints) []domain.QualityFlag {
	switch hints.IndicatorType {
	case domain.IndicatorStock, domain.IndicatorCapacity, domain.IndicatorPrice:
	default:
		return nil
	}

	var affected []time.Time
	for i, v := range values {
		if v < 0 {
			affected = append(affected, sorted[i].Date)
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return []domain.QualityFlag{{
		CheckType:     "false_readings",
		Status:        domain.StatusCritical,
		Severity:      5,
		Message:       fmt.Sprintf("negative value(s) for %s indicator", hints.IndicatorType),
		AffectedDates: affected,
	}}
}

// detectFlatPeriods flags runs of five or more identical consecutive
// readings, a common symptom of a stuck sensor or carried-forward fill.
func detectFlatPeriods(sorted []domain.SamplePoint, values []float64) []domain.QualityFlag {
	var flags []domain.QualityFlag
	i := 0
	for i < len(values) {
		j := i + 1
		for j < len(values) && values[j] == values[i] {
			j++
		}
		if runLen := j - i; runLen >= 5 {
			flags = append(flags, domain.QualityFlag{
				CheckType:     "false_readings",
				Status:        domain.StatusFlagged,
				Severity:      3,
				Message:       fmt.Sprintf("flat period of %d consecutive readings at %.4g", runLen, values[i]),
				Details:       map[string]any{"run_length": runLen, "value": values[i]},
				AffectedDates: []time.Time{sorted[i].Date, sorted[j-1].Date},
			})
		}
		i = j
	}
	return flags
}

// detectRepeatingPatterns flags any 3-value window that recurs three or
// more times across the series, within floating-point tolerance.
func detectRepeatingPatterns(sorted []domain.SamplePoint, values []float64) []domain.QualityFlag {
	if len(values) < 3 {
		return nil
	}

	seen := map[string][]int{}
	for k := 0; k+2 < len(values); k++ {
		key := fmt.Sprintf("%.4f|%.4f|%.4f", values[k], values[k+1], values[k+2])
		seen[key] = append(seen[key], k)
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var flags []domain.QualityFlag
	for _, key := range keys {
		idxs := seen[key]
		if len(idxs) < 3 {
			continue
		}
		affected := make([]time.Time, len(idxs))
		for n, idx := range idxs {
			affected[n] = sorted[idx].Date
		}
		flags = append(flags, domain.QualityFlag{
			CheckType:     "false_readings",
			Status:        domain.StatusFlagged,
			Severity:      4,
			Message:       fmt.Sprintf("repeating 3-value pattern recurs %d times", len(idxs)),
			AffectedDates: affected,
		})
	}
	return flags
}

// detectDecimalErrors looks for points that are better explained as a
// power-of-ten-shifted version of the series' own typical value — the
// signature of a dropped or extra decimal digit at the source.
func detectDecimalErrors(sorted []domain.SamplePoint, values []float64) []domain.QualityFlag {
	if len(values) < 3 {
		return nil
	}
	sortedVals := append([]float64(nil), values...)
	sort.Float64s(sortedVals)
	median := medianOf(sortedVals)
	lo, hi := sortedVals[0], sortedVals[len(sortedVals)-1]

	var flags []domain.QualityFlag
	for i, p := range values {
		if p == 0 {
			continue
		}
		for _, s := range decimalScales {
			candidate := p / s
			if candidate < lo*0.5 || candidate > hi*2 {
				continue
			}
			if math.Abs(candidate-median) >= math.Abs(p-median) {
				continue
			}
			flags = append(flags, domain.QualityFlag{
				CheckType:     "false_readings",
				Status:        domain.StatusCritical,
				Severity:      5,
				Message:       fmt.Sprintf("suspected decimal error at %s", sorted[i].Date.Format("2006-01-02")),
				Details:       map[string]any{"suspected_correct_value": candidate, "scale_divisor": s},
				AffectedDates: []time.Time{sorted[i].Date},
			})
			break
		}
	}
	return flags
}
