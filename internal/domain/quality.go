package domain

import "time"

// IndicatorType classifies what an indicator's raw value represents,
// used by the false-readings detector's impossible-value check.
type IndicatorType string

const (
	IndicatorStock    IndicatorType = "stock"
	IndicatorCapacity IndicatorType = "capacity"
	IndicatorPrice    IndicatorType = "price"
	IndicatorFlow     IndicatorType = "flow"
	IndicatorOther    IndicatorType = "other"
)

// TemporalAggregation describes how a period's value was derived,
// consulted by the consistency detector's interval check.
type TemporalAggregation string

const (
	AggPeriodTotal   TemporalAggregation = "period-total"
	AggPeriodAverage TemporalAggregation = "period-average"
	AggPointInTime   TemporalAggregation = "point-in-time"
)

// Frequency is the expected reporting cadence of a time series, used by
// the staleness detector.
type Frequency string

const (
	FreqDaily       Frequency = "daily"
	FreqWeekly      Frequency = "weekly"
	FreqMonthly     Frequency = "monthly"
	FreqQuarterly   Frequency = "quarterly"
	FreqAnnual      Frequency = "annual"
	FreqPointInTime Frequency = "point-in-time"
)

// ExpectedGapDays returns the expected number of days between
// consecutive observations for the frequency (§4.H.1).
func (f Frequency) ExpectedGapDays() float64 {
	switch f {
	case FreqDaily:
		return 1
	case FreqWeekly:
		return 7
	case FreqMonthly:
		return 30
	case FreqQuarterly:
		return 90
	case FreqAnnual:
		return 365
	case FreqPointInTime:
		return 30
	default:
		return 30
	}
}

// ClassificationHints accompanies a time series into the Quality
// Detector Suite (§4.H).
type ClassificationHints struct {
	ExpectedFrequency   Frequency           `json:"expected_frequency"`
	IndicatorType       IndicatorType       `json:"indicator_type"`
	IsCumulative        bool                `json:"is_cumulative"`
	ExpectedScale       Scale               `json:"expected_scale,omitempty"`
	TemporalAggregation TemporalAggregation `json:"temporal_aggregation,omitempty"`
}

// QualityStatus is the verdict of a single detector or the
// consolidator.
type QualityStatus string

const (
	StatusPassed   QualityStatus = "passed"
	StatusFlagged  QualityStatus = "flagged"
	StatusCritical QualityStatus = "critical"
)

// QualityFlag is a single detector finding (§3).
type QualityFlag struct {
	CheckType     string         `json:"check_type"`
	Status        QualityStatus  `json:"status"`
	Severity      int            `json:"severity"`
	Message       string         `json:"message"`
	Details       map[string]any `json:"details,omitempty"`
	AffectedDates []time.Time    `json:"affected_dates,omitempty"`
}

// ConsolidatedQualityReport is the output of run_quality_checks (§6),
// aggregating the five independent detectors (§4.H Consolidator).
type ConsolidatedQualityReport struct {
	IndicatorID  string        `json:"indicator_id"`
	TotalChecks  int           `json:"total_checks"`
	Passed       int           `json:"passed"`
	Flagged      int           `json:"flagged"`
	Critical     int           `json:"critical"`
	AllFlags     []QualityFlag `json:"all_flags"`
	OverallScore float64       `json:"overall_score"`
	Status       string        `json:"status"` // clean | minor_issues | major_issues | unusable
}
