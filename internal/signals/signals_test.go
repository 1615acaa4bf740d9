package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/indicator-normalize/internal/domain"
)

func TestResolve_ScaleConflictPrefersUnit(t *testing.T) {
	rec := domain.InputRecord{Unit: "EUR Million", Scale: domain.ScaleBillions}
	parsed := domain.ParsedUnit{CurrencyToken: "EUR", ScaleToken: domain.ScaleMillions, MatchedPattern: "scale:millions"}

	resolved, err := Resolve(rec, parsed, domain.DomainMonetaryStock, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, domain.ScaleMillions, resolved.Scale.Value)
	assert.Equal(t, domain.SourceUnit, resolved.Scale.Source)
	require.Len(t, resolved.Notes, 1)
	assert.Contains(t, resolved.Notes[0], "scale_conflict")
}

func TestResolve_CurrencyFallsBackToStructured(t *testing.T) {
	rec := domain.InputRecord{Unit: "Million", CurrencyCode: "GBP"}
	parsed := domain.ParsedUnit{ScaleToken: domain.ScaleMillions, MatchedPattern: "scale:millions"}

	resolved, err := Resolve(rec, parsed, domain.DomainMonetaryStock, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "GBP", resolved.Currency.Value)
	assert.Equal(t, domain.SourceStructured, resolved.Currency.Source)
}

func TestResolve_AmbiguousSignalInStrictMode(t *testing.T) {
	rec := domain.InputRecord{Unit: "USD Million", CurrencyCode: "EUR"}
	parsed := domain.ParsedUnit{CurrencyToken: "USD"}
	cfg := domain.DefaultConfig()
	cfg.StrictMode = true

	_, err := Resolve(rec, parsed, domain.DomainMonetaryStock, cfg)
	require.Error(t, err)
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrAmbiguousSignal, derr.Kind)
}

func TestResolve_NonStrictModeAlwaysResolves(t *testing.T) {
	rec := domain.InputRecord{Unit: "USD Million", CurrencyCode: "EUR"}
	parsed := domain.ParsedUnit{CurrencyToken: "USD"}

	resolved, err := Resolve(rec, parsed, domain.DomainMonetaryStock, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "USD", resolved.Currency.Value)
}

func TestResolve_TimeDefaultsToMonthForFlows(t *testing.T) {
	rec := domain.InputRecord{Unit: "USD Million"}
	parsed := domain.ParsedUnit{CurrencyToken: "USD", ScaleToken: domain.ScaleMillions}

	resolved, err := Resolve(rec, parsed, domain.DomainMonetaryFlow, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, domain.TimeMonth, resolved.Time.Value)
	assert.Equal(t, domain.SourceDefault, resolved.Time.Source)
}

func TestResolve_TimeDefaultsToNoneForStocks(t *testing.T) {
	rec := domain.InputRecord{Unit: "USD Million"}
	parsed := domain.ParsedUnit{CurrencyToken: "USD", ScaleToken: domain.ScaleMillions}

	resolved, err := Resolve(rec, parsed, domain.DomainMonetaryStock, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, domain.TimeNone, resolved.Time.Value)
}

func TestResolve_CumulativeByKeyword(t *testing.T) {
	rec := domain.InputRecord{Unit: "USD Million YTD"}
	resolved, err := Resolve(rec, domain.ParsedUnit{}, domain.DomainMonetaryFlow, domain.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, resolved.IsCumulative)
}

func TestResolve_CumulativeBySampleTrend(t *testing.T) {
	rec := domain.InputRecord{
		Unit: "USD Million",
		SampleValues: []domain.SamplePoint{
			{Value: 1}, {Value: 2}, {Value: 3}, {Value: 4}, {Value: 5}, {Value: 6},
		},
	}
	resolved, err := Resolve(rec, domain.ParsedUnit{}, domain.DomainMonetaryFlow, domain.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, resolved.IsCumulative)
}
