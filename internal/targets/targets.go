// Package targets implements the Auto-Target Selector (§4.E): the sole
// batch-level reduction in the pipeline. It runs once per batch, after
// every record has been routed and its signals resolved, and its result
// is frozen for the remainder of the batch (§9).
package targets

import (
	"sort"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// Select computes the batch's currency/magnitude/time targets from the
// per-record domain tags and resolved signals, following the
// majority-vote dominance rule in §4.E. signals and domains must be
// index-aligned with the batch's records.
func Select(domains []domain.Domain, signals []domain.ResolvedSignals, cfg domain.Config) domain.Targets {
	currencyCounts := make(map[string]int)
	scaleCounts := make(map[domain.Scale]int)
	monetaryCount := 0

	for i, d := range domains {
		if !d.IsMonetary() {
			continue
		}
		monetaryCount++
		currencyCounts[signals[i].Currency.Value]++
		scaleCounts[signals[i].Scale.Value]++
	}

	return domain.Targets{
		Currency:  selectCurrency(currencyCounts, monetaryCount, cfg),
		Magnitude: selectMagnitude(scaleCounts, monetaryCount, cfg),
		Time:      domain.Resolved[domain.TimeBasis]{Value: cfg.TargetTimeScale, Source: domain.SourceExplicit},
	}
}

func selectCurrency(counts map[string]int, total int, cfg domain.Config) domain.Resolved[string] {
	if !cfg.AutoTargetCurrency {
		return domain.Resolved[string]{Value: cfg.TargetCurrency, Source: domain.SourceExplicit}
	}
	mode, modeCount := modeString(counts)
	if total > 0 && float64(modeCount)/float64(total) >= cfg.DominanceThreshold {
		return domain.Resolved[string]{Value: mode, Source: domain.SourceAuto}
	}
	return domain.Resolved[string]{Value: cfg.TargetCurrency, Source: domain.SourceFallback}
}

func selectMagnitude(counts map[domain.Scale]int, total int, cfg domain.Config) domain.Resolved[domain.Scale] {
	if !cfg.AutoTargetMagnitude {
		return domain.Resolved[domain.Scale]{Value: cfg.TargetMagnitude, Source: domain.SourceExplicit}
	}
	mode, modeCount := modeScale(counts)
	if total > 0 && float64(modeCount)/float64(total) >= cfg.DominanceThreshold {
		return domain.Resolved[domain.Scale]{Value: mode, Source: domain.SourceAuto}
	}
	return domain.Resolved[domain.Scale]{Value: cfg.TargetMagnitude, Source: domain.SourceFallback}
}

// modeString returns the most frequent key, breaking ties
// alphabetically so Select is deterministic regardless of Go's
// randomized map iteration order (§8.7/§8.8).
func modeString(counts map[string]int) (string, int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	bestKey := ""
	bestCount := -1
	for _, k := range keys {
		if counts[k] > bestCount {
			bestKey, bestCount = k, counts[k]
		}
	}
	if bestCount < 0 {
		bestCount = 0
	}
	return bestKey, bestCount
}

func modeScale(counts map[domain.Scale]int) (domain.Scale, int) {
	keys := make([]domain.Scale, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	var bestKey domain.Scale
	bestCount := -1
	for _, k := range keys {
		if counts[k] > bestCount {
			bestKey, bestCount = k, counts[k]
		}
	}
	if bestCount < 0 {
		bestCount = 0
	}
	return bestKey, bestCount
}
