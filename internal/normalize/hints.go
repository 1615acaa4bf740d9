package normalize

import "github.com/aristath/indicator-normalize/internal/domain"

// classificationHints derives the Quality Detector Suite's
// ClassificationHints from what classify_record and the Conversion
// Engine already know about a record — no additional input is asked of
// the caller beyond the record itself (§4.H).
func classificationHints(rec domain.InputRecord, domainTag domain.Domain, sig domain.ResolvedSignals) domain.ClassificationHints {
	return domain.ClassificationHints{
		ExpectedFrequency: expectedFrequency(rec.Periodicity),
		IndicatorType:     indicatorType(domainTag),
		IsCumulative:      sig.IsCumulative,
		ExpectedScale:     rec.Scale,
	}
}

func expectedFrequency(p domain.Periodicity) domain.Frequency {
	switch p {
	case domain.PeriodicityDaily:
		return domain.FreqDaily
	case domain.PeriodicityWeekly:
		return domain.FreqWeekly
	case domain.PeriodicityMonthly:
		return domain.FreqMonthly
	case domain.PeriodicityQuarterly:
		return domain.FreqQuarterly
	case domain.PeriodicityYearly:
		return domain.FreqAnnual
	default:
		return domain.FreqPointInTime
	}
}

func indicatorType(domainTag domain.Domain) domain.IndicatorType {
	switch domainTag {
	case domain.DomainMonetaryStock:
		return domain.IndicatorStock
	case domain.DomainMonetaryFlow:
		return domain.IndicatorFlow
	case domain.DomainEnergy, domain.DomainCommodities, domain.DomainAgriculture, domain.DomainMetals, domain.DomainCrypto:
		return domain.IndicatorPrice
	default:
		return domain.IndicatorOther
	}
}
