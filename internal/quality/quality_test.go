package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/indicator-normalize/internal/domain"
)

func TestRunQualityChecks_CleanSeries(t *testing.T) {
	now := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	points := flatSeries(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 100, 101, 99, 102, 98)
	report := RunQualityChecks("gdp-us", points, domain.ClassificationHints{ExpectedFrequency: domain.FreqMonthly}, now)
	assert.Equal(t, 5, report.TotalChecks)
	assert.Equal(t, 5, report.Passed)
	assert.Equal(t, "clean", report.Status)
	assert.Equal(t, 100.0, report.OverallScore)
	assert.Empty(t, report.AllFlags)
}

func TestRunQualityChecks_UnusableOnCriticalFinding(t *testing.T) {
	now := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []domain.SamplePoint{
		{Date: d, Value: 10},
		{Date: d, Value: 20},
	}
	report := RunQualityChecks("dup-dates", points, domain.ClassificationHints{ExpectedFrequency: domain.FreqMonthly}, now)
	require.NotEmpty(t, report.AllFlags)
	assert.Equal(t, "unusable", report.Status)
	assert.Equal(t, 2, report.Critical) // duplicate dates, and 152 days without data
	assert.Less(t, report.OverallScore, 100.0)
}

func TestRunQualityChecks_IndicatorIDPropagated(t *testing.T) {
	report := RunQualityChecks("cpi-fr", nil, domain.ClassificationHints{}, time.Now())
	assert.Equal(t, "cpi-fr", report.IndicatorID)
	assert.Equal(t, 5, report.Passed)
}
