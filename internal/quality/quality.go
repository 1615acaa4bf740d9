package quality

import (
	"sync"
	"time"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// RunQualityChecks is the run_quality_checks library entry point (§6):
// it runs the five detectors independently — each reads points and
// hints but shares no state with the others — then consolidates their
// findings into a single report.
//
// now is the caller's notion of "current time", threaded through to the
// staleness detector so the suite stays pure and reruns deterministically
// against recorded data.
func RunQualityChecks(indicatorID string, points []domain.SamplePoint, hints domain.ClassificationHints, now time.Time) domain.ConsolidatedQualityReport {
	detectors := map[string]func() []domain.QualityFlag{
		"staleness":         func() []domain.QualityFlag { return DetectStaleness(points, hints, now) },
		"magnitude_anomaly": func() []domain.QualityFlag { return DetectMagnitudeAnomaly(points, hints) },
		"false_readings":    func() []domain.QualityFlag { return DetectFalseReadings(points, hints) },
		"unit_change":       func() []domain.QualityFlag { return DetectRegimeShift(points) },
		"consistency":       func() []domain.QualityFlag { return DetectConsistency(points, hints) },
	}

	results := make(map[string][]domain.QualityFlag, len(detectors))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, run := range detectors {
		wg.Add(1)
		go func(name string, run func() []domain.QualityFlag) {
			defer wg.Done()
			flags := run()
			mu.Lock()
			results[name] = flags
			mu.Unlock()
		}(name, run)
	}
	wg.Wait()

	return consolidate(indicatorID, results)
}
