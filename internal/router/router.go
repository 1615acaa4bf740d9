// Package router implements the Domain Router (§4.C): a first-match-wins
// decision procedure assigning one of eleven domain tags to a record
// from its parsed unit hints and raw structured fields. Routing never
// fails; an unrecognized unit falls through to domain.DomainCounts.
package router

import (
	"strings"

	"github.com/aristath/indicator-normalize/internal/domain"
)

var flowCategoryGroups = map[string]bool{
	"labour":      true,
	"wages":       true,
	"consumer":    true,
	"trade-flow":  true,
	"consumption": true,
}

var energyKeywords = []string{"gwh", "mwh", "terajoule", "mw", "bcf", "tcf", "barrels", "bbl"}
var energySubKeywords = []string{"electricity", "generation", "capacity", "demand"}
var agricultureUnitKeywords = []string{"tonnes", "bushels", "head", "hectares"}
var agricultureCropKeywords = []string{"wheat", "corn", "maize", "rice", "soybean", "cattle", "livestock", "poultry", "crop"}
var metalKeywords = []string{"gold", "silver", "copper", "iron", "steel", "aluminum", "zinc", "nickel", "lithium"}
var cryptoTickers = map[string]bool{
	"btc": true, "eth": true, "sol": true, "ada": true, "xrp": true,
	"bnb": true, "dot": true, "doge": true, "ltc": true, "trx": true,
	"matic": true, "gwei": true,
}

// Route assigns one domain tag to rec using parsed, per the first-match
// decision table in §4.C.
func Route(rec domain.InputRecord, parsed domain.ParsedUnit) domain.Domain {
	haystack := strings.ToLower(rec.Unit + " " + rec.CategoryGroup)

	switch parsed.UnitTypeHint {
	case domain.HintPercentage:
		return domain.DomainPercentages
	case domain.HintIndex:
		return domain.DomainIndices
	case domain.HintRatio:
		if parsed.CurrencyToken == "" {
			return domain.DomainRatios
		}
	}

	if parsed.CurrencyToken != "" {
		if (parsed.TimeToken != domain.TimeNone && parsed.TimeToken != "") || flowCategoryGroups[strings.ToLower(rec.CategoryGroup)] {
			return domain.DomainMonetaryFlow
		}
		return domain.DomainMonetaryStock
	}

	if containsAny(haystack, energyKeywords) {
		if containsAny(haystack, energySubKeywords) {
			return domain.DomainEnergy
		}
		return domain.DomainCommodities
	}

	if containsAny(haystack, agricultureUnitKeywords) && containsAny(haystack, agricultureCropKeywords) {
		return domain.DomainAgriculture
	}

	if containsAny(haystack, metalKeywords) {
		return domain.DomainMetals
	}

	for _, token := range strings.Fields(haystack) {
		if cryptoTickers[strings.Trim(token, ".,/")] {
			return domain.DomainCrypto
		}
	}

	return domain.DomainCounts
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
