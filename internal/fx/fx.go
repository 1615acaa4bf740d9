// Package fx implements the FX Table (§4.D) and the FX resolution step
// consumed by the Conversion Engine. The rate table itself is the plain
// domain.FXTable data structure; this package adds the read-only
// resolver with a per-batch rate cache, grounded on the upstream
// FXTransformer's cached rate lookups and copy-on-write audit record.
package fx

import (
	"sync"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// NewTable validates and returns table, matching the §4.D invariant
// that the base currency is present in rates with value 1.
func NewTable(table *domain.FXTable) (*domain.FXTable, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Resolver resolves currency pairs against a read-only FX table, caching
// rate lookups for the duration of a batch (the table itself never
// changes, so the cache never needs invalidation). The cache is guarded
// by a mutex, so one Resolver may be shared by parallel workers.
type Resolver struct {
	table     *domain.FXTable
	useLiveFX bool
	mu        sync.Mutex
	cache     map[string]float64
}

// NewResolver builds a Resolver over table. useLiveFX only affects the
// "source" label recorded in the explain record (§6: use_live_fx is
// informational — the core always consumes the supplied table).
func NewResolver(table *domain.FXTable, useLiveFX bool) *Resolver {
	return &Resolver{table: table, useLiveFX: useLiveFX, cache: make(map[string]float64)}
}

func (r *Resolver) rate(code string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache[code]; ok {
		return v, true
	}
	v, ok := r.table.Rate(code)
	if ok {
		r.cache[code] = v
	}
	return v, ok
}

// Convert computes the FX conversion factor from source to target
// currency per §4.F.2.
//
// Returns applied=false with no error when the currencies are identical
// (the FX step is omitted, not a no-op multiply, per the invariant in
// §8.2), in which case explain is the zero FXExplain, or when source is
// a sentinel currency (§4.D, §9), in which case explain carries the
// SkippedReason.
//
// Returns domain.ErrUnknownCurrency when conversion is required (source
// != target, source not a sentinel) but either currency is absent from
// the table.
func (r *Resolver) Convert(sourceCurrency, targetCurrency string) (factor float64, explain domain.FXExplain, applied bool, err error) {
	explain = domain.FXExplain{SourceCurrency: sourceCurrency, TargetCurrency: targetCurrency}

	if sourceCurrency == targetCurrency {
		return 1, domain.FXExplain{}, false, nil
	}

	if domain.IsSentinelCurrency(sourceCurrency) {
		explain.SkippedReason = "local-currency-unit"
		return 1, explain, false, nil
	}

	sourceRate, sourceOK := r.rate(sourceCurrency)
	targetRate, targetOK := r.rate(targetCurrency)
	if !sourceOK || !targetOK {
		missing := targetCurrency
		if !sourceOK {
			missing = sourceCurrency
		}
		return 0, domain.FXExplain{}, false, domain.NewError(domain.ErrUnknownCurrency, "currency not present in fx table: "+missing)
	}

	factor = sourceRate / targetRate
	explain.Rate = factor
	if r.useLiveFX {
		explain.Source = "live"
	} else {
		explain.Source = "fallback"
	}
	if asOf, ok := r.table.AsOf(sourceCurrency); ok {
		explain.AsOf = asOf
	}
	return factor, explain, true, nil
}
