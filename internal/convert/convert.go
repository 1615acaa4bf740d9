// Package convert implements the Conversion Engine (§4.F): given a
// record's resolved signals and the batch's frozen targets, it computes
// the ordered magnitude/fx/time transform chain and assembles the
// explain record.
package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/aristath/indicator-normalize/internal/domain"
	"github.com/aristath/indicator-normalize/internal/fx"
)

// Convert applies the magnitude, FX, and time steps to rec's value
// according to domainTag's non-monetary domain policy (§4.F), producing
// a domain.NormalizedRecord. resolver may be nil only when domainTag
// never requires an FX lookup (non-monetary domains).
func Convert(
	rec domain.InputRecord,
	domainTag domain.Domain,
	sig domain.ResolvedSignals,
	tgt domain.Targets,
	resolver *fx.Resolver,
	cfg domain.Config,
) (domain.NormalizedRecord, error) {
	value := rec.Value
	explain := &domain.Explain{
		OriginalUnit: rec.Unit,
		Domain:       domainTag,
		Signals: domain.SignalsExplain{
			Currency: sig.Currency,
			Scale:    sig.Scale,
			Time:     sig.Time,
		},
		Targets: tgt,
	}

	var normalizedUnit string
	var err error

	switch domainTag {
	case domain.DomainMonetaryStock:
		value, err = applyMagnitude(value, sig.Scale.Value, tgt.Magnitude.Value, explain)
		if err != nil {
			return domain.NormalizedRecord{}, err
		}
		value, err = applyFX(value, sig.Currency.Value, tgt.Currency.Value, resolver, explain)
		if err != nil {
			return domain.NormalizedRecord{}, err
		}
		normalizedUnit = fmt.Sprintf("%s %s", tgt.Currency.Value, tgt.Magnitude.Value.Word())
		explain.ConversionApplied = true

	case domain.DomainMonetaryFlow:
		value, err = applyMagnitude(value, sig.Scale.Value, tgt.Magnitude.Value, explain)
		if err != nil {
			return domain.NormalizedRecord{}, err
		}
		value, err = applyFX(value, sig.Currency.Value, tgt.Currency.Value, resolver, explain)
		if err != nil {
			return domain.NormalizedRecord{}, err
		}
		value, err = applyTime(value, sig.Time.Value, tgt.Time.Value, explain)
		if err != nil {
			return domain.NormalizedRecord{}, err
		}
		normalizedUnit = fmt.Sprintf("%s %s per %s", tgt.Currency.Value, tgt.Magnitude.Value.Word(), tgt.Time.Value)
		explain.ConversionApplied = true

	case domain.DomainCounts:
		value, err = applyMagnitude(value, sig.Scale.Value, domain.ScaleOnes, explain)
		if err != nil {
			return domain.NormalizedRecord{}, err
		}
		normalizedUnit = "ones"
		explain.ConversionApplied = true

	case domain.DomainPercentages:
		normalizedUnit = percentageUnit(rec.Unit)
		explain.ConversionApplied = false

	case domain.DomainIndices:
		normalizedUnit = strings.TrimSpace(rec.Unit)
		explain.ConversionApplied = false

	case domain.DomainCrypto:
		normalizedUnit = strings.TrimSpace(rec.Unit)
		if sig.Currency.Value != "" {
			value, err = applyMagnitude(value, sig.Scale.Value, tgt.Magnitude.Value, explain)
			if err != nil {
				return domain.NormalizedRecord{}, err
			}
			explain.ConversionApplied = true
		}

	default: // energy, commodities, agriculture, metals
		normalizedUnit = strings.TrimSpace(rec.Unit)
		explain.ConversionApplied = false
	}

	explain.NormalizedUnit = normalizedUnit
	explain.ConversionSummary = summarize(rec, explain, normalizedUnit, value)

	return domain.NormalizedRecord{
		ID:              rec.ID,
		NormalizedValue: value,
		NormalizedUnit:  normalizedUnit,
		Domain:          domainTag,
		Explain:         explain,
	}, nil
}

func applyMagnitude(value float64, source, target domain.Scale, explain *domain.Explain) (float64, error) {
	factor := math.Pow(10, float64(source.Exponent()-target.Exponent()))
	if err := checkFinite(factor); err != nil {
		return 0, err
	}
	explain.Magnitude = &domain.MagnitudeExplain{Source: source, Target: target, Factor: factor}
	result := value * factor
	if err := checkFinite(result); err != nil {
		return 0, err
	}
	return result, nil
}

func applyFX(value float64, sourceCurrency, targetCurrency string, resolver *fx.Resolver, explain *domain.Explain) (float64, error) {
	if resolver == nil {
		return value, nil
	}
	factor, fxExplain, applied, err := resolver.Convert(sourceCurrency, targetCurrency)
	if err != nil {
		return 0, err
	}
	if !applied {
		if fxExplain.SkippedReason != "" {
			explain.FX = &fxExplain
		}
		return value, nil
	}
	if err := checkFinite(factor); err != nil {
		return 0, err
	}
	explain.FX = &fxExplain
	result := value * factor
	if err := checkFinite(result); err != nil {
		return 0, err
	}
	return result, nil
}

func applyTime(value float64, source, target domain.TimeBasis, explain *domain.Explain) (float64, error) {
	sourceHours, targetHours := source.Hours(), target.Hours()
	if sourceHours == 0 || targetHours == 0 {
		return value, nil
	}
	factor := targetHours / sourceHours
	if err := checkFinite(factor); err != nil {
		return 0, err
	}
	explain.Time = &domain.TimeExplain{Source: source, Target: target, Factor: factor}
	result := value * factor
	if err := checkFinite(result); err != nil {
		return 0, err
	}
	return result, nil
}

func checkFinite(f float64) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return domain.NewError(domain.ErrInfiniteResult, "non-finite conversion factor")
	}
	return nil
}

// percentageUnit normalizes a percentage-family unit string to one of
// the four canonical forms documented in §4.F.
func percentageUnit(original string) string {
	lower := strings.ToLower(original)
	switch {
	case strings.Contains(lower, "basis") || strings.Contains(lower, "bps"):
		return "bps"
	case strings.Contains(lower, "% of gdp"):
		return "% of GDP"
	case strings.Contains(lower, "pp"):
		return "pp"
	default:
		return "%"
	}
}

func summarize(rec domain.InputRecord, explain *domain.Explain, normalizedUnit string, normalizedValue float64) string {
	if !explain.ConversionApplied {
		return fmt.Sprintf("%s %s (unconverted)", trimNumber(rec.Value), strings.TrimSpace(rec.Unit))
	}
	return fmt.Sprintf("%s %s -> %s %s", trimNumber(rec.Value), strings.TrimSpace(rec.Unit), trimNumber(normalizedValue), normalizedUnit)
}

func trimNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}
