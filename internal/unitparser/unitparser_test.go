package unitparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/indicator-normalize/internal/domain"
)

func TestParse_USDMillion(t *testing.T) {
	p, err := Parse("USD Million")
	require.NoError(t, err)
	assert.Equal(t, "USD", p.CurrencyToken)
	assert.Equal(t, domain.ScaleMillions, p.ScaleToken)
	assert.Equal(t, domain.TimeNone, p.TimeToken)
	assert.Equal(t, domain.HintCurrency, p.UnitTypeHint)
	assert.Equal(t, 1.0, p.ParsingConfidence)
}

func TestParse_EURBillion(t *testing.T) {
	p, err := Parse("EUR Billion")
	require.NoError(t, err)
	assert.Equal(t, "EUR", p.CurrencyToken)
	assert.Equal(t, domain.ScaleBillions, p.ScaleToken)
}

func TestParse_USDPerYear(t *testing.T) {
	p, err := Parse("USD per year")
	require.NoError(t, err)
	assert.Equal(t, "USD", p.CurrencyToken)
	assert.Equal(t, domain.TimeYear, p.TimeToken)
}

func TestParse_JPYPerMonth(t *testing.T) {
	p, err := Parse("JPY per month")
	require.NoError(t, err)
	assert.Equal(t, "JPY", p.CurrencyToken)
	assert.Equal(t, domain.TimeMonth, p.TimeToken)
}

func TestParse_MillionItems(t *testing.T) {
	p, err := Parse("Million items")
	require.NoError(t, err)
	assert.Equal(t, domain.ScaleMillions, p.ScaleToken)
	assert.Empty(t, p.CurrencyToken)
}

func TestParse_Percent(t *testing.T) {
	p, err := Parse("percent")
	require.NoError(t, err)
	assert.Equal(t, domain.HintPercentage, p.UnitTypeHint)
}

func TestParse_EmptyUnit(t *testing.T) {
	p, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, domain.HintUnknown, p.UnitTypeHint)
	assert.Equal(t, 0.3, p.ParsingConfidence)
	assert.Empty(t, p.CurrencyToken)
}

func TestParse_MalformedUnit(t *testing.T) {
	_, err := Parse("USD\x00Million")
	require.Error(t, err)
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrMalformedUnit, derr.Kind)
}

func TestParse_CompositePhysicalPrice(t *testing.T) {
	p, err := Parse("USD/barrel")
	require.NoError(t, err)
	assert.Equal(t, "USD", p.CurrencyToken)
	assert.Equal(t, domain.HintRatio, p.UnitTypeHint)
}

func TestParse_SentinelLCU(t *testing.T) {
	p, err := Parse("National Currency Million")
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyLCU, p.CurrencyToken)
}

func TestParse_SentinelPPP(t *testing.T) {
	p, err := Parse("Current International Dollar")
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyPPPIntl, p.CurrencyToken)
}

func TestParse_CurrencySymbol(t *testing.T) {
	p, err := Parse("€ Million")
	require.NoError(t, err)
	assert.Equal(t, "EUR", p.CurrencyToken)
}

func TestParse_GrowthRateSuffixIgnored(t *testing.T) {
	p, err := Parse("YoY percent")
	require.NoError(t, err)
	assert.Equal(t, domain.TimeNone, p.TimeToken)
	assert.Equal(t, domain.HintPercentage, p.UnitTypeHint)
}

func TestParse_BasisPoints(t *testing.T) {
	p, err := Parse("bps")
	require.NoError(t, err)
	assert.Equal(t, domain.HintPercentage, p.UnitTypeHint)
}

func TestParse_IndexHint(t *testing.T) {
	p, err := Parse("Index Points")
	require.NoError(t, err)
	assert.Equal(t, domain.HintIndex, p.UnitTypeHint)
}

func TestParse_PhysicalKeyword(t *testing.T) {
	p, err := Parse("GWh")
	require.NoError(t, err)
	assert.Equal(t, domain.HintPhysical, p.UnitTypeHint)
}
