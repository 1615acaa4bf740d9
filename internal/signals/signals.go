// Package signals implements the Signal Resolver (§4.B): it merges the
// Unit Parser's output with a record's structured hints into canonical
// currency/scale/time signals using the documented conflict policy,
// recording which input source won each field.
package signals

import (
	"strings"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// Resolve merges parsed with rec's structured hints into a
// domain.ResolvedSignals. domainTag must already be known (the Domain
// Router's decision does not depend on resolved signals, only on the
// parsed unit and raw record fields, so callers typically route before
// resolving — see internal/normalize for the wiring).
//
// Returns domain.ErrAmbiguousSignal only when cfg.StrictMode is set and
// the unit token and currency_code field name different, non-sentinel
// currencies.
func Resolve(rec domain.InputRecord, parsed domain.ParsedUnit, domainTag domain.Domain, cfg domain.Config) (domain.ResolvedSignals, error) {
	result := domain.ResolvedSignals{}

	// --- Currency ---
	switch {
	case parsed.CurrencyToken != "" && rec.CurrencyCode != "" && parsed.CurrencyToken != rec.CurrencyCode:
		if cfg.StrictMode && !domain.IsSentinelCurrency(parsed.CurrencyToken) && !domain.IsSentinelCurrency(rec.CurrencyCode) {
			return domain.ResolvedSignals{}, domain.NewError(domain.ErrAmbiguousSignal,
				"unit currency token and currency_code field disagree: "+parsed.CurrencyToken+" vs "+rec.CurrencyCode)
		}
		result.Currency = domain.Resolved[string]{Value: parsed.CurrencyToken, Source: domain.SourceUnit}
		result.Notes = append(result.Notes, "currency_conflict: unit="+parsed.CurrencyToken+" structured="+rec.CurrencyCode)
	case parsed.CurrencyToken != "":
		result.Currency = domain.Resolved[string]{Value: parsed.CurrencyToken, Source: domain.SourceUnit}
	case rec.CurrencyCode != "":
		result.Currency = domain.Resolved[string]{Value: rec.CurrencyCode, Source: domain.SourceStructured}
	default:
		result.Currency = domain.Resolved[string]{Value: "", Source: domain.SourceDefault}
	}

	// --- Scale ---
	unitHasExplicitScale := strings.Contains(parsed.MatchedPattern, "scale:") && parsed.ScaleToken != domain.ScaleOnes
	switch {
	case unitHasExplicitScale && rec.Scale != "" && rec.Scale != parsed.ScaleToken:
		result.Scale = domain.Resolved[domain.Scale]{Value: parsed.ScaleToken, Source: domain.SourceUnit}
		result.Notes = append(result.Notes, "scale_conflict: unit="+string(parsed.ScaleToken)+" structured="+string(rec.Scale))
	case unitHasExplicitScale:
		result.Scale = domain.Resolved[domain.Scale]{Value: parsed.ScaleToken, Source: domain.SourceUnit}
	case rec.Scale != "":
		result.Scale = domain.Resolved[domain.Scale]{Value: rec.Scale, Source: domain.SourceStructured}
	default:
		result.Scale = domain.Resolved[domain.Scale]{Value: domain.ScaleOnes, Source: domain.SourceDefault}
	}

	// --- Time basis ---
	switch {
	case parsed.TimeToken != domain.TimeNone && parsed.TimeToken != "":
		result.Time = domain.Resolved[domain.TimeBasis]{Value: parsed.TimeToken, Source: domain.SourceUnit}
	case rec.Periodicity.TimeBasis() != "":
		result.Time = domain.Resolved[domain.TimeBasis]{Value: rec.Periodicity.TimeBasis(), Source: domain.SourceStructured}
	case domainTag == domain.DomainMonetaryFlow:
		result.Time = domain.Resolved[domain.TimeBasis]{Value: domain.TimeMonth, Source: domain.SourceDefault}
	default:
		result.Time = domain.Resolved[domain.TimeBasis]{Value: domain.TimeNone, Source: domain.SourceDefault}
	}

	// --- Cumulative flag ---
	result.IsCumulative = hasCumulativeKeyword(rec.Unit) || hasCumulativeKeyword(rec.CategoryGroup) || nonDecreasingRun(rec.SampleValues) >= 6

	return result, nil
}

func hasCumulativeKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range []string{"ytd", "cumulative", "year-to-date", "running total"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// nonDecreasingRun returns the number of points in the longest run of
// consecutive samples whose values never decrease (every difference
// inside the run is >= 0).
func nonDecreasingRun(points []domain.SamplePoint) int {
	if len(points) < 2 {
		return 0
	}
	best, cur := 1, 1
	for i := 1; i < len(points); i++ {
		if points[i].Value >= points[i-1].Value {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 1
		}
	}
	return best
}
