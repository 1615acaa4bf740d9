package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/indicator-normalize/internal/domain"
)

func TestClassificationHints_MapsPeriodicityAndDomain(t *testing.T) {
	rec := domain.InputRecord{Periodicity: domain.PeriodicityQuarterly, Scale: domain.ScaleMillions}
	hints := classificationHints(rec, domain.DomainMonetaryStock, domain.ResolvedSignals{IsCumulative: true})

	assert.Equal(t, domain.FreqQuarterly, hints.ExpectedFrequency)
	assert.Equal(t, domain.IndicatorStock, hints.IndicatorType)
	assert.True(t, hints.IsCumulative)
	assert.Equal(t, domain.ScaleMillions, hints.ExpectedScale)
}

func TestClassificationHints_UnsetPeriodicityDefaultsPointInTime(t *testing.T) {
	hints := classificationHints(domain.InputRecord{}, domain.DomainCounts, domain.ResolvedSignals{})
	assert.Equal(t, domain.FreqPointInTime, hints.ExpectedFrequency)
	assert.Equal(t, domain.IndicatorOther, hints.IndicatorType)
}

func TestClassificationHints_PriceDomainsMapToIndicatorPrice(t *testing.T) {
	for _, d := range []domain.Domain{domain.DomainEnergy, domain.DomainCommodities, domain.DomainAgriculture, domain.DomainMetals, domain.DomainCrypto} {
		hints := classificationHints(domain.InputRecord{}, d, domain.ResolvedSignals{})
		assert.Equal(t, domain.IndicatorPrice, hints.IndicatorType, "domain %s", d)
	}
}
