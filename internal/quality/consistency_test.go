package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/indicator-normalize/internal/domain"
)

func TestDetectConsistency_MonotonicityViolation(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	points := flatSeries(base, 100, 110, 105, 120)
	flags := DetectConsistency(points, domain.ClassificationHints{IsCumulative: true})
	found := false
	for _, f := range flags {
		if f.Message != "" && f.CheckType == "consistency" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectConsistency_NonCumulativeDecreaseIsFine(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	points := flatSeries(base, 100, 110, 105, 120)
	flags := DetectConsistency(points, domain.ClassificationHints{IsCumulative: false})
	assert.Empty(t, flags)
}

func TestDetectConsistency_DuplicateDatesDistinctValues(t *testing.T) {
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []domain.SamplePoint{
		{Date: d, Value: 10},
		{Date: d, Value: 20},
	}
	flags := DetectConsistency(points, domain.ClassificationHints{})
	found := false
	for _, f := range flags {
		if f.Severity == 5 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectConsistency_IrregularIntervalFlagged(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		base, base.AddDate(0, 1, 0), base.AddDate(0, 2, 0),
		base.AddDate(0, 2, 20), base.AddDate(0, 7, 0), base.AddDate(0, 7, 5),
		base.AddDate(1, 0, 0),
	}
	points := make([]domain.SamplePoint, len(dates))
	for i, d := range dates {
		points[i] = domain.SamplePoint{Date: d, Value: float64(i)}
	}
	flags := DetectConsistency(points, domain.ClassificationHints{TemporalAggregation: domain.AggPeriodTotal})
	found := false
	for _, f := range flags {
		if _, ok := f.Details["coefficient_of_variation"]; ok {
			found = true
		}
	}
	assert.True(t, found)
}
