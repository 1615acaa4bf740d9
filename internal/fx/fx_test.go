package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/indicator-normalize/internal/domain"
)

func sampleTable() *domain.FXTable {
	return &domain.FXTable{
		Base:  "USD",
		Rates: map[string]float64{"USD": 1, "EUR": 1.1, "GBP": 1.25, "JPY": 0.007},
		Dates: map[string]string{"USD": "2024-01-01", "EUR": "2024-01-01", "GBP": "2024-01-01", "JPY": "2024-01-01"},
	}
}

func TestNewTable_ValidatesBase(t *testing.T) {
	_, err := NewTable(&domain.FXTable{Base: "USD", Rates: map[string]float64{"EUR": 1.1}})
	require.Error(t, err)
}

func TestConvert_IdentityIsOmitted(t *testing.T) {
	r := NewResolver(sampleTable(), false)
	factor, explain, applied, err := r.Convert("USD", "USD")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1.0, factor)
	assert.Equal(t, domain.FXExplain{}, explain)
}

func TestConvert_EURtoUSD(t *testing.T) {
	r := NewResolver(sampleTable(), false)
	factor, explain, applied, err := r.Convert("EUR", "USD")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.InDelta(t, 1.1, factor, 1e-9)
	assert.Equal(t, "fallback", explain.Source)
}

func TestConvert_SentinelSkipped(t *testing.T) {
	r := NewResolver(sampleTable(), false)
	_, explain, applied, err := r.Convert(domain.CurrencyLCU, "USD")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "local-currency-unit", explain.SkippedReason)
}

func TestConvert_UnknownCurrency(t *testing.T) {
	r := NewResolver(sampleTable(), false)
	_, _, _, err := r.Convert("XYZ", "USD")
	require.Error(t, err)
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrUnknownCurrency, derr.Kind)
}
